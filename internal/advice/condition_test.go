package advice

import (
	"testing"

	"github.com/teamgrav/teamgrav/internal/store"
)

func testSnapshot() *store.Snapshot {
	return &store.Snapshot{
		Team:         "demo",
		Binding:      500,
		Friction:     20,
		Margin:       480,
		Stable:       true,
		DroppedEdges: 2,
		Members: []store.MemberState{
			{Name: "Sora", Capacity: 8, Resistance: 0.2, Gravity: 3840},
			{Name: "Yuki", Capacity: 4, Resistance: 1.5, Gravity: 62.5},
		},
	}
}

func TestEvalCondition(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		cond      string
		wantFires bool
		wantValue float64
	}{
		{"margin < 0", false, 480},
		{"margin > 0", true, 480},
		{"margin >= 480", true, 480},
		{"margin <= 480", true, 480},
		{"margin == 480", true, 480},
		{"binding > 100", true, 500},
		{"friction < 10", false, 20},
		{"max_resistance > 1", true, 1.5},
		{"leader_capacity < 3", false, 8},
		{"top_gravity > 5000", false, 3840},
		{"dropped_edges > 0", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			fires, value := evalCondition(tt.cond, snap)
			if fires != tt.wantFires {
				t.Errorf("fires = %v, want %v", fires, tt.wantFires)
			}
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
		})
	}
}

func TestEvalCondition_Malformed(t *testing.T) {
	snap := testSnapshot()

	for _, cond := range []string{
		"",
		"margin",
		"margin <",
		"margin < 0 extra",
		"margin ! 0",
		"margin < abc",
		"unknown_field > 0",
	} {
		t.Run(cond, func(t *testing.T) {
			if fires, value := evalCondition(cond, snap); fires || value != 0 {
				t.Errorf("evalCondition(%q) = (%v, %v), want (false, 0)", cond, fires, value)
			}
		})
	}
}

func TestEvalCondition_LeaderFieldsNeedMembers(t *testing.T) {
	empty := &store.Snapshot{Team: "empty"}

	for _, cond := range []string{"leader_capacity < 3", "top_gravity > 0"} {
		if fires, _ := evalCondition(cond, empty); fires {
			t.Errorf("%q fired on a snapshot with no members", cond)
		}
	}
}
