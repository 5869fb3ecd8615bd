package stress

import (
	"errors"
	"testing"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/team"
)

func TestWorstCase_DemoFixture(t *testing.T) {
	report, err := WorstCase(team.Demo(), engine.DefaultParams())
	if err != nil {
		t.Fatalf("WorstCase: %v", err)
	}

	if !almostEqual(report.BaseMargin, 108356.66666666667, 1e-6) {
		t.Errorf("BaseMargin = %v, want 108356.66666666667", report.BaseMargin)
	}
	if len(report.Scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(report.Scenarios))
	}

	// Ranked by margin drop descending: removing the top-gravity member
	// hurts the most, then the resistance spike, then the edge break.
	want := []struct {
		kind      string
		newMargin float64
		drop      float64
	}{
		{ScenarioNodeExit, 10662.266666666666, 97694.40000000001},
		{ScenarioResistanceSpike, 43225.4, 65131.26666666667},
		{ScenarioEdgeBreak, 86238.06666666668, 22118.59999999999},
	}
	for i, w := range want {
		got := report.Scenarios[i]
		if got.Kind != w.kind {
			t.Errorf("scenario[%d].Kind = %q, want %q", i, got.Kind, w.kind)
		}
		if !almostEqual(got.NewMargin, w.newMargin, 1e-6) {
			t.Errorf("scenario[%d].NewMargin = %v, want %v", i, got.NewMargin, w.newMargin)
		}
		if !almostEqual(got.MarginDrop, w.drop, 1e-6) {
			t.Errorf("scenario[%d].MarginDrop = %v, want %v", i, got.MarginDrop, w.drop)
		}
	}

	if report.CriticalThreat != ScenarioNodeExit {
		t.Errorf("CriticalThreat = %q, want %q", report.CriticalThreat, ScenarioNodeExit)
	}
	if report.Advisory != advisories[ScenarioNodeExit] {
		t.Errorf("Advisory = %q, want node-exit advisory", report.Advisory)
	}
}

func TestWorstCase_DoesNotMutateBase(t *testing.T) {
	demo := team.Demo()
	p := engine.DefaultParams()

	before, _ := engine.EvaluateTeam(demo, p)
	if _, err := WorstCase(demo, p); err != nil {
		t.Fatalf("WorstCase: %v", err)
	}
	after, _ := engine.EvaluateTeam(demo, p)

	if before.Margin != after.Margin {
		t.Errorf("base margin changed: %v -> %v", before.Margin, after.Margin)
	}
	if len(demo.Members) != 4 {
		t.Errorf("member count changed: %d", len(demo.Members))
	}
}

func TestWorstCase_TooSmall(t *testing.T) {
	solo := &team.Team{
		Members: []team.Member{{Name: "Sora", Integration: 10, Capacity: 5, Resistance: 0.2}},
		Compat:  team.NewSymMatrix(1, 1),
	}
	if _, err := WorstCase(solo, engine.DefaultParams()); !errors.Is(err, ErrTooSmall) {
		t.Errorf("err = %v, want ErrTooSmall", err)
	}
}

func TestStrongestPair(t *testing.T) {
	demo := team.Demo()
	p := engine.DefaultParams()
	base, err := engine.EvaluateTeam(demo, p)
	if err != nil {
		t.Fatalf("EvaluateTeam: %v", err)
	}

	// Sora and Hana carry the biggest binding term even though Sora-Kai has
	// the higher compatibility.
	i, j := strongestPair(base.Gravity, demo.Compat, p.Kappa)
	if i != 0 || j != 3 {
		t.Errorf("strongestPair = (%d,%d), want (0,3)", i, j)
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want int
	}{
		{"increasing", []float64{1, 2, 3}, 2},
		{"decreasing", []float64{3, 2, 1}, 0},
		{"tie keeps first", []float64{2, 2, 1}, 0},
		{"single", []float64{5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argmax(tt.vals); got != tt.want {
				t.Errorf("argmax(%v) = %d, want %d", tt.vals, got, tt.want)
			}
		})
	}
}
