package engine

import "github.com/teamgrav/teamgrav/internal/team"

// Sensitivity holds the exact analytic partial derivatives of the stability
// margin with respect to each tunable input of one snapshot.
type Sensitivity struct {
	// Resistance[i] is dMargin/dR[i].
	Resistance []float64

	// Compat.At(i, j) is dMargin/dS[i][j]; the matrix is symmetric.
	Compat *team.SymMatrix
}

// Sensitivities computes the margin gradients for one snapshot.
//
// With interactionSum[i] = κ·Σ_{j≠i} S[i][j]·G[j]:
//
//	dG/dR[i]      = −L[i]²·V[i] / (R[i]+ε)²        (quotient rule)
//	dMargin/dR[i] = interactionSum[i]·dG/dR[i] − 1  (−1 from D's direct R term)
//	dMargin/dS[i][j] = κ·G[i]·G[j] + 1              (+1 from D's (1−S) term)
func Sensitivities(l, v, r []float64, s *team.SymMatrix, p Params) (*Sensitivity, error) {
	n, err := checkShapes(l, v, r, s)
	if err != nil {
		return nil, err
	}

	g := GravityVec(l, v, r, p.Epsilon)

	interactionSum := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j != i {
				interactionSum[i] += p.Kappa * s.At(i, j) * g[j]
			}
		}
	}

	dR := make([]float64, n)
	for i := 0; i < n; i++ {
		denom := r[i] + p.Epsilon
		dGdR := -(l[i] * l[i] * v[i]) / (denom * denom)
		dR[i] = interactionSum[i]*dGdR - 1
	}

	dS := team.NewSymMatrix(n, 0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dS.Set(i, j, p.Kappa*g[i]*g[j]+1)
		}
	}

	return &Sensitivity{Resistance: dR, Compat: dS}, nil
}
