package engine

// Default model constants. Callers override them per evaluation through
// Params — they are configuration, not hardcoded behavior.
const (
	// DefaultKappa is the coupling constant scaling pairwise binding energy.
	DefaultKappa = 0.02

	// DefaultEpsilon regularizes the gravity denominator so R = 0 never
	// divides by zero.
	DefaultEpsilon = 0.1
)

// Params holds the two model constants shared by every engine operation.
type Params struct {
	Kappa   float64
	Epsilon float64
}

// DefaultParams returns the standard model constants.
func DefaultParams() Params {
	return Params{Kappa: DefaultKappa, Epsilon: DefaultEpsilon}
}

// Gravity computes one member's gravity G = L²·V/(R+ε).
//
// Pure function with no error conditions: for L, V, R ≥ 0 and ε > 0 the
// result is finite and non-negative. Negative inputs produce a mathematically
// defined (if semantically meaningless) value rather than an error.
func Gravity(l, v, r, eps float64) float64 {
	return l * l * v / (r + eps)
}

// GravityVec applies Gravity elementwise. The three slices must share a
// length; GravityVec is only called after that has been checked.
func GravityVec(l, v, r []float64, eps float64) []float64 {
	out := make([]float64, len(l))
	for i := range l {
		out[i] = Gravity(l[i], v[i], r[i], eps)
	}
	return out
}
