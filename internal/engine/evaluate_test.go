package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/teamgrav/teamgrav/internal/team"
)

// demoArrays returns the four-member fixture in raw array form.
func demoArrays() (l, v, r []float64, s *team.SymMatrix) {
	t := team.Demo()
	l, v, r = t.Arrays()
	return l, v, r, t.Compat
}

func TestEvaluate_DemoFixture(t *testing.T) {
	l, v, r, s := demoArrays()

	m, err := Evaluate(l, v, r, s, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	wantG := []float64{3840, 666.6666666666666, 62.5, 1440}
	for i, g := range m.Gravity {
		if !almostEqual(g, wantG[i], 1e-9) {
			t.Errorf("Gravity[%d] = %v, want %v", i, g, wantG[i])
		}
	}

	// Expected aggregates for the fixture, exact to floating point.
	if !almostEqual(m.Binding, 108362.66666666667, 1e-6) {
		t.Errorf("Binding = %v, want 108362.66666666667", m.Binding)
	}
	if !almostEqual(m.Friction, 6.0, 1e-9) {
		t.Errorf("Friction = %v, want 6.0", m.Friction)
	}
	if !almostEqual(m.Margin, 108356.66666666667, 1e-6) {
		t.Errorf("Margin = %v, want 108356.66666666667", m.Margin)
	}
	if !m.Stable {
		t.Error("Stable = false, want true")
	}
}

func TestEvaluate_ShapeMismatch(t *testing.T) {
	l, v, r, s := demoArrays()

	tests := []struct {
		name string
		l, v, r []float64
		s    *team.SymMatrix
	}{
		{"short V", l, v[:3], r, s},
		{"short R", l, v, r[:2], s},
		{"small matrix", l, v, r, team.NewSymMatrix(3, 0.5)},
		{"nil matrix", l, v, r, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.l, tc.v, tc.r, tc.s, DefaultParams())
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("err = %v, want ErrShapeMismatch", err)
			}
		})
	}
}

// A margin of exactly zero counts as unstable: the inequality is strict.
func TestEvaluate_ZeroMarginIsUnstable(t *testing.T) {
	// Single pair with G=0 on both sides: K = 0, D = R sum + (1-S).
	// With R = 0 and S = 1 the margin is exactly 0.
	l := []float64{0, 0}
	v := []float64{0, 0}
	r := []float64{0, 0}
	s := team.NewSymMatrix(2, 1)

	m, err := Evaluate(l, v, r, s, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if m.Margin != 0 {
		t.Fatalf("Margin = %v, want exactly 0", m.Margin)
	}
	if m.Stable {
		t.Error("Stable = true for zero margin, want false")
	}
}

// Permuting member order (and the matrix with it) must not change the
// aggregate metrics.
func TestEvaluate_PermutationInvariant(t *testing.T) {
	l, v, r, s := demoArrays()
	base, err := Evaluate(l, v, r, s, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	perm := []int{2, 0, 3, 1}
	n := len(l)
	pl := make([]float64, n)
	pv := make([]float64, n)
	pr := make([]float64, n)
	ps := team.NewSymMatrix(n, 0)
	for i, src := range perm {
		pl[i] = l[src]
		pv[i] = v[src]
		pr[i] = r[src]
		for j, src2 := range perm {
			ps.SetAsym(i, j, s.At(src, src2))
		}
	}

	got, err := Evaluate(pl, pv, pr, ps, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate permuted: %v", err)
	}
	if !almostEqual(got.Binding, base.Binding, 1e-6) {
		t.Errorf("Binding = %v, want %v", got.Binding, base.Binding)
	}
	if !almostEqual(got.Friction, base.Friction, 1e-9) {
		t.Errorf("Friction = %v, want %v", got.Friction, base.Friction)
	}
	if !almostEqual(got.Margin, base.Margin, 1e-6) {
		t.Errorf("Margin = %v, want %v", got.Margin, base.Margin)
	}
}

// Evaluating the same snapshot twice must be bit-identical: there is no
// hidden state.
func TestEvaluate_Idempotent(t *testing.T) {
	l, v, r, s := demoArrays()
	a, err := Evaluate(l, v, r, s, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	b, err := Evaluate(l, v, r, s, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if a.Binding != b.Binding || a.Friction != b.Friction || a.Margin != b.Margin {
		t.Errorf("repeat evaluation differs: %+v vs %+v", a, b)
	}
}

// Raising any single compatibility cell strictly increases binding and
// margin when both gravities are positive.
func TestEvaluate_CompatMonotonic(t *testing.T) {
	l, v, r, s := demoArrays()
	base, _ := Evaluate(l, v, r, s, DefaultParams())

	bumped := s.Clone()
	bumped.Set(1, 3, bumped.At(1, 3)+0.1)
	got, err := Evaluate(l, v, r, bumped, DefaultParams())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Binding <= base.Binding {
		t.Errorf("Binding did not increase: %v <= %v", got.Binding, base.Binding)
	}
	if got.Margin <= base.Margin {
		t.Errorf("Margin did not increase: %v <= %v", got.Margin, base.Margin)
	}
}

// Raising any single resistance strictly decreases margin: the direct
// friction term and the gravity drop both push the same way.
func TestEvaluate_ResistanceMonotonic(t *testing.T) {
	l, v, r, s := demoArrays()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		i := rng.Intn(len(r))
		base, _ := Evaluate(l, v, r, s, DefaultParams())

		bumped := make([]float64, len(r))
		copy(bumped, r)
		bumped[i] += 0.05 + rng.Float64()
		got, err := Evaluate(l, v, bumped, s, DefaultParams())
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if got.Margin >= base.Margin {
			t.Fatalf("raising R[%d] did not lower margin: %v >= %v", i, got.Margin, base.Margin)
		}
	}
}

func TestEvaluateTeam_ValidatesSnapshot(t *testing.T) {
	bad := &team.Team{
		Members: team.Demo().Members,
		Compat:  team.NewSymMatrix(3, 0.5),
	}
	if _, err := EvaluateTeam(bad, DefaultParams()); !errors.Is(err, team.ErrSizeMismatch) {
		t.Errorf("err = %v, want ErrSizeMismatch", err)
	}
}
