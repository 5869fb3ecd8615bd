package stress

import (
	"errors"
	"fmt"
	"sort"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/team"
)

// Scenario kinds.
const (
	ScenarioEdgeBreak       = "edge_break"
	ScenarioResistanceSpike = "resistance_spike"
	ScenarioNodeExit        = "node_exit"
)

// Perturbation magnitudes.
const (
	// edgeBreakFactor scales the strongest pair's compatibility (a 40% cut).
	edgeBreakFactor = 0.6

	// resistanceSpikeDelta is added to the top member's resistance.
	resistanceSpikeDelta = 0.6
)

// ErrTooSmall is returned when a team has fewer than two members — no pair
// exists to break and removing the top member would leave nothing to
// evaluate.
var ErrTooSmall = errors.New("stress: worst-case scenarios need at least two members")

// advisories maps the top-ranked scenario kind to its fixed advisory text.
var advisories = map[string]string{
	ScenarioResistanceSpike: "Monitor ego/burnout of key leaders. Implement 'R-Guard'.",
	ScenarioNodeExit:        "Key person dependency is high. Implement 'Dual-Core'.",
	ScenarioEdgeBreak:       "Key relationship is fragile. Implement 'Bridge Weaving'.",
}

// ScenarioResult is one evaluated worst-case perturbation.
type ScenarioResult struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	NewMargin   float64 `json:"new_margin"`
	MarginDrop  float64 `json:"margin_drop"`
}

// WorstCaseReport ranks the three scenarios by margin drop, worst first.
type WorstCaseReport struct {
	BaseMargin float64 `json:"base_margin"`

	// Scenarios is ordered by MarginDrop descending.
	Scenarios []ScenarioResult `json:"scenarios"`

	// CriticalThreat is the kind of the top-ranked scenario.
	CriticalThreat string `json:"critical_threat"`

	// Advisory is the fixed advice string for CriticalThreat.
	Advisory string `json:"advisory"`
}

// WorstCase evaluates the three designed failure modes against the base
// snapshot: breaking the strongest edge (compatibility ×0.6 on both
// symmetric cells), spiking the top-gravity member's resistance by 0.6, and
// removing the top-gravity member entirely. Every scenario evaluates a
// modified copy — the base snapshot is never touched.
func WorstCase(t *team.Team, p engine.Params) (*WorstCaseReport, error) {
	if len(t.Members) < 2 {
		return nil, ErrTooSmall
	}
	base, err := engine.EvaluateTeam(t, p)
	if err != nil {
		return nil, err
	}

	topIdx := argmax(base.Gravity)
	ei, ej := strongestPair(base.Gravity, t.Compat, p.Kappa)
	names := t.Names()

	scenarios := make([]ScenarioResult, 0, 3)

	// Edge break.
	broken := t.Clone()
	broken.Compat.Set(ei, ej, broken.Compat.At(ei, ej)*edgeBreakFactor)
	m, err := engine.EvaluateTeam(broken, p)
	if err != nil {
		return nil, err
	}
	scenarios = append(scenarios, ScenarioResult{
		Kind:        ScenarioEdgeBreak,
		Description: fmt.Sprintf("strongest edge (%s-%s) compatibility -40%%", names[ei], names[ej]),
		NewMargin:   m.Margin,
		MarginDrop:  base.Margin - m.Margin,
	})

	// Resistance spike.
	spiked := t.Clone()
	spiked.Members[topIdx].Resistance += resistanceSpikeDelta
	m, err = engine.EvaluateTeam(spiked, p)
	if err != nil {
		return nil, err
	}
	scenarios = append(scenarios, ScenarioResult{
		Kind:        ScenarioResistanceSpike,
		Description: fmt.Sprintf("top member (%s) resistance +%.1f", names[topIdx], resistanceSpikeDelta),
		NewMargin:   m.Margin,
		MarginDrop:  base.Margin - m.Margin,
	})

	// Node exit.
	m, err = engine.EvaluateTeam(t.Without(topIdx), p)
	if err != nil {
		return nil, err
	}
	scenarios = append(scenarios, ScenarioResult{
		Kind:        ScenarioNodeExit,
		Description: fmt.Sprintf("top member (%s) removed", names[topIdx]),
		NewMargin:   m.Margin,
		MarginDrop:  base.Margin - m.Margin,
	})

	sort.SliceStable(scenarios, func(a, b int) bool {
		return scenarios[a].MarginDrop > scenarios[b].MarginDrop
	})

	threat := scenarios[0].Kind
	return &WorstCaseReport{
		BaseMargin:     base.Margin,
		Scenarios:      scenarios,
		CriticalThreat: threat,
		Advisory:       advisories[threat],
	}, nil
}

// argmax returns the index of the largest value; first wins on ties.
func argmax(vals []float64) int {
	best := 0
	for i, v := range vals {
		if v > vals[best] {
			best = i
		}
	}
	return best
}

// strongestPair returns the unordered pair with the largest binding term
// κ·G[i]·G[j]·S[i][j].
func strongestPair(g []float64, s *team.SymMatrix, kappa float64) (int, int) {
	bi, bj := 0, 1
	best := kappa * g[0] * g[1] * s.At(0, 1)
	for i := range g {
		for j := i + 1; j < len(g); j++ {
			if k := kappa * g[i] * g[j] * s.At(i, j); k > best {
				best, bi, bj = k, i, j
			}
		}
	}
	return bi, bj
}
