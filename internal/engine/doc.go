// Package engine is the pure computational core of the team gravity model.
//
// gravity.go provides the per-member gravity formula G = L²·V/(R+ε), in
// scalar and elementwise-vector form.
//
// evaluate.go aggregates one snapshot into global stability metrics: binding
// energy K over all unordered member pairs, friction D (total resistance plus
// pairwise misalignment), and the stability margin M = K − D. A margin of
// exactly zero counts as unstable.
//
// sensitivity.go derives the exact analytic partial derivatives of the
// margin with respect to each resistance value and each compatibility cell —
// closed-form gradients, not finite differences.
//
// optimize.go turns those gradients plus a cost model and budget into a
// ranked list of intervention suggestions using a greedy ROI knapsack. The
// greedy walk is an intentional design choice, not an approximation bug: it
// skips candidates that would overflow the remaining budget rather than
// stopping at the first one.
//
// Every function is stateless and reentrant; all errors are shape mismatches
// detected up front.
package engine
