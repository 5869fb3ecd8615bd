package stress

import (
	"fmt"
	"io"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/team"
)

// fragilityThreshold is the instability probability above which the Monte
// Carlo section warns that the team is fragile.
const fragilityThreshold = 0.05

// WriteReport runs both test procedures against t and renders the combined
// human-readable batch report to w. The only output contract is readable
// stdout text — nothing downstream parses it.
func WriteReport(w io.Writer, t *team.Team, p engine.Params, o MonteCarloOptions) error {
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintln(w, "⚡ TEAM GRAVITY STRESS TEST REPORT ⚡")
	fmt.Fprintln(w, "==========================================")
	fmt.Fprintln(w)

	mc, err := MonteCarlo(t, p, o)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[1] Monte Carlo Simulation (N=%d)\n", mc.Iterations)
	fmt.Fprintf(w, "    - Probability of Instability: %.2f%%\n", mc.InstabilityProbability*100)
	fmt.Fprintf(w, "    - Mean Stability Margin:      %.2f\n", mc.MeanMargin)
	fmt.Fprintf(w, "    - Worst 5%% Case Margin:       %.2f\n", mc.Percentile5)
	if mc.InstabilityProbability > fragilityThreshold {
		fmt.Fprintln(w, "    ⚠️  WARNING: team is fragile to minor shocks.")
	} else {
		fmt.Fprintln(w, "    ✅  PASSED: team is robust against noise.")
	}
	fmt.Fprintln(w)

	wc, err := WorstCase(t, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[2] Worst-Case Scenarios (Base Margin: %.2f)\n", wc.BaseMargin)
	for _, sc := range wc.Scenarios {
		dropPct := 0.0
		if wc.BaseMargin != 0 {
			dropPct = sc.MarginDrop / wc.BaseMargin * 100
		}
		fmt.Fprintf(w, "    💥 %s: %s\n", sc.Kind, sc.Description)
		fmt.Fprintf(w, "       Drop: -%.2f (-%.1f%%) | Result: %.2f\n", sc.MarginDrop, dropPct, sc.NewMargin)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "------------------------------------------")
	fmt.Fprintf(w, "🛑 CRITICAL THREAT: %s\n", wc.CriticalThreat)
	fmt.Fprintf(w, "👉 ADVICE: %s\n", wc.Advisory)
	fmt.Fprintln(w, "==========================================")
	return nil
}
