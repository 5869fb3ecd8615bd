// Package stress estimates how robust a team snapshot's stability margin is
// under perturbation.
//
// montecarlo.go injects Gaussian noise into every attribute and matrix cell
// for a configurable number of trials and reports aggregate margin
// statistics plus the fraction of trials that came out unstable. Trials are
// independent, so the loop fans out across workers, each drawing from its
// own seeded random source.
//
// scenarios.go evaluates three designed worst cases against the base
// snapshot — breaking the strongest edge, spiking the top member's
// resistance, and removing the top member outright — and ranks them by how
// much margin they destroy.
//
// report.go renders both as the human-readable batch report printed by
// cmd/stressreport.
package stress
