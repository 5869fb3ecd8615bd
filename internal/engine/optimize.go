package engine

import (
	"sort"

	"github.com/teamgrav/teamgrav/internal/team"
)

// Suggestion kinds.
const (
	KindReduceResistance = "reduce_resistance"
	KindBoostCompat      = "boost_compat"
)

// DefaultStep is the attribute change each candidate intervention applies.
const DefaultStep = 0.1

// Suggestion is one candidate intervention: either reduce one member's
// resistance by the step size or boost one pair's compatibility by it.
type Suggestion struct {
	// Kind is KindReduceResistance or KindBoostCompat.
	Kind string `json:"kind"`

	// Target is the member index the intervention applies to.
	Target int `json:"target"`

	// Partner is the second member index for KindBoostCompat, -1 otherwise.
	Partner int `json:"partner"`

	// Gain is the projected margin improvement.
	Gain float64 `json:"gain"`

	// Cost is the price of the intervention under the cost model.
	Cost float64 `json:"cost"`

	// ROI is Gain / Cost.
	ROI float64 `json:"roi"`
}

// CostModel prices interventions: cost per unit of resistance reduction per
// member, and per unit of compatibility gain per pair.
type CostModel struct {
	Resistance []float64
	Compat     *team.SymMatrix
}

// UnitCosts returns a cost model charging 1.0 per unit everywhere, so ROI
// ranking degenerates to ranking by raw gain.
func UnitCosts(n int) CostModel {
	r := make([]float64, n)
	for i := range r {
		r[i] = 1
	}
	return CostModel{Resistance: r, Compat: team.NewSymMatrix(n, 1)}
}

// Suggest ranks budget-feasible interventions by return on investment.
//
// For each member the candidate is reducing R by step (gain = −dM/dR·step);
// for each unordered pair it is boosting S by step (gain = dM/dS·step).
// Candidates with non-positive cost are excluded — ROI is undefined for
// them, and exclusion is the documented recovery, not an error.
//
// Candidates are stably sorted by ROI descending, then accepted greedily:
// a candidate whose cost exceeds the remaining budget is skipped, not a
// stopping point. The result is the accepted list in ROI order; total spend
// is the sum of accepted costs. Greedy selection is deliberately not a
// globally optimal knapsack solution.
func Suggest(l, v, r []float64, s *team.SymMatrix, costs CostModel, budget, step float64, p Params) ([]Suggestion, error) {
	n, err := checkShapes(l, v, r, s)
	if err != nil {
		return nil, err
	}
	if _, err := checkShapes(l, v, costs.Resistance, costs.Compat); err != nil {
		return nil, err
	}

	sens, err := Sensitivities(l, v, r, s, p)
	if err != nil {
		return nil, err
	}

	candidates := make([]Suggestion, 0, n+n*(n-1)/2)

	for i := 0; i < n; i++ {
		gain := -sens.Resistance[i] * step
		cost := costs.Resistance[i] * step
		if cost <= 0 {
			continue
		}
		candidates = append(candidates, Suggestion{
			Kind:    KindReduceResistance,
			Target:  i,
			Partner: -1,
			Gain:    gain,
			Cost:    cost,
			ROI:     gain / cost,
		})
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			gain := sens.Compat.At(i, j) * step
			cost := costs.Compat.At(i, j) * step
			if cost <= 0 {
				continue
			}
			candidates = append(candidates, Suggestion{
				Kind:    KindBoostCompat,
				Target:  i,
				Partner: j,
				Gain:    gain,
				Cost:    cost,
				ROI:     gain / cost,
			})
		}
	}

	// Stable sort: ties keep enumeration order (members before pairs).
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].ROI > candidates[b].ROI
	})

	accepted := make([]Suggestion, 0, len(candidates))
	var spend float64
	for _, c := range candidates {
		if spend+c.Cost <= budget {
			accepted = append(accepted, c)
			spend += c.Cost
		}
	}
	return accepted, nil
}

// SuggestTeam is the snapshot-level convenience form of Suggest.
func SuggestTeam(t *team.Team, costs CostModel, budget, step float64, p Params) ([]Suggestion, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	l, v, r := t.Arrays()
	return Suggest(l, v, r, t.Compat, costs, budget, step, p)
}
