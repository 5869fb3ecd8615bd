package advice

import (
	"strconv"
	"strings"

	"github.com/teamgrav/teamgrav/internal/store"
)

// evalCondition evaluates a rule condition string against a Snapshot.
//
// Supported expressions (field operator value):
//
//	margin < 0
//	binding < 100
//	friction > 10
//	max_resistance > 1
//	leader_capacity < 3
//	top_gravity > 5000
//	dropped_edges > 0
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is
// unknown.
func evalCondition(cond string, snap *store.Snapshot) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rawVal := parts[0], parts[1], parts[2]

	threshold, err := strconv.ParseFloat(rawVal, 64)
	if err != nil {
		return false, 0
	}

	value, ok := fieldValue(field, snap)
	if !ok {
		return false, 0
	}

	switch op {
	case ">":
		return value > threshold, value
	case ">=":
		return value >= threshold, value
	case "<":
		return value < threshold, value
	case "<=":
		return value <= threshold, value
	case "==":
		return value == threshold, value
	default:
		return false, 0
	}
}

// fieldValue resolves a condition field name to its numeric value.
func fieldValue(field string, snap *store.Snapshot) (float64, bool) {
	switch field {
	case "margin":
		return snap.Margin, true
	case "binding":
		return snap.Binding, true
	case "friction":
		return snap.Friction, true
	case "max_resistance":
		_, r := snap.MaxResistance()
		return r, true
	case "leader_capacity":
		leader, ok := snap.Leader()
		if !ok {
			return 0, false
		}
		return leader.Capacity, true
	case "top_gravity":
		leader, ok := snap.Leader()
		if !ok {
			return 0, false
		}
		return leader.Gravity, true
	case "dropped_edges":
		return float64(snap.DroppedEdges), true
	default:
		return 0, false
	}
}
