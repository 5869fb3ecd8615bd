package engine

import (
	"errors"
	"fmt"

	"github.com/teamgrav/teamgrav/internal/team"
)

// ErrShapeMismatch is returned when L, V, R and the compatibility matrix do
// not agree on the node count. The engine fails fast — it never pads or
// truncates.
var ErrShapeMismatch = errors.New("engine: input shapes disagree on node count")

// Metrics is the ephemeral result of evaluating one snapshot. It is
// recomputed on demand and never persisted.
type Metrics struct {
	// Gravity holds the derived per-member gravity values.
	Gravity []float64

	// Binding is K: total attractive energy over all unordered pairs.
	Binding float64

	// Friction is D: total resistance plus pairwise misalignment.
	Friction float64

	// Margin is K − D. Positive means the team is modeled as stable.
	Margin float64

	// Stable is Margin > 0, strictly. A margin of exactly zero is unstable.
	Stable bool
}

// checkShapes verifies that all inputs agree on node count n.
func checkShapes(l, v, r []float64, s *team.SymMatrix) (int, error) {
	n := len(l)
	if len(v) != n || len(r) != n || s == nil || s.Size() != n {
		sn := -1
		if s != nil {
			sn = s.Size()
		}
		return 0, fmt.Errorf("%w: len(L)=%d len(V)=%d len(R)=%d dim(S)=%d",
			ErrShapeMismatch, n, len(v), len(r), sn)
	}
	return n, nil
}

// Evaluate computes the global stability metrics for one snapshot.
//
// Binding energy accumulates κ·G[i]·G[j]·S[i][j] over the upper triangle so
// each unordered pair is counted exactly once; friction is the sum of all
// resistance values plus the upper-triangle misalignment Σ(1 − S[i][j]).
func Evaluate(l, v, r []float64, s *team.SymMatrix, p Params) (*Metrics, error) {
	n, err := checkShapes(l, v, r, s)
	if err != nil {
		return nil, err
	}

	g := GravityVec(l, v, r, p.Epsilon)

	var binding, misalignment, resistance float64
	for i := 0; i < n; i++ {
		resistance += r[i]
		for j := i + 1; j < n; j++ {
			binding += p.Kappa * g[i] * g[j] * s.At(i, j)
			misalignment += 1 - s.At(i, j)
		}
	}

	friction := resistance + misalignment
	margin := binding - friction

	return &Metrics{
		Gravity:  g,
		Binding:  binding,
		Friction: friction,
		Margin:   margin,
		Stable:   margin > 0,
	}, nil
}

// EvaluateTeam is the snapshot-level convenience form of Evaluate.
func EvaluateTeam(t *team.Team, p Params) (*Metrics, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	l, v, r := t.Arrays()
	return Evaluate(l, v, r, t.Compat, p)
}
