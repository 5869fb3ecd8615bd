package stress

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/team"
)

// Defaults for MonteCarloOptions.
const (
	DefaultIterations = 5000
	DefaultNoiseScale = 0.1
)

// Noise standard deviations as multiples of NoiseScale. Integration and
// capacity wander more than resistance and compatibility.
const (
	attrNoiseFactor  = 2.0
	minorNoiseFactor = 0.5
)

// MonteCarloOptions configures one simulation run.
type MonteCarloOptions struct {
	// Iterations is the number of independent noise trials.
	Iterations int

	// NoiseScale scales every noise standard deviation. Zero means every
	// trial reproduces the base snapshot exactly.
	NoiseScale float64

	// Seed makes the run reproducible. Worker w draws from Seed+w, so a
	// given (Seed, Workers) pair always produces the same statistics.
	Seed int64

	// Workers is the fan-out width; 0 means GOMAXPROCS.
	Workers int
}

// withDefaults fills zero fields.
func (o MonteCarloOptions) withDefaults() MonteCarloOptions {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Workers > o.Iterations {
		o.Workers = o.Iterations
	}
	return o
}

// MonteCarloResult aggregates the margins observed across all trials.
type MonteCarloResult struct {
	Iterations  int     `json:"iterations"`
	MeanMargin  float64 `json:"mean_margin"`
	MinMargin   float64 `json:"min_margin"`
	Percentile5 float64 `json:"percentile_5"`

	// InstabilityProbability is the fraction of trials whose perturbed
	// snapshot evaluated as unstable.
	InstabilityProbability float64 `json:"instability_probability"`
}

// MonteCarlo perturbs t for o.Iterations trials and reports margin
// statistics. Each trial adds clamped Gaussian noise to L, V and R, then
// noises the compatibility matrix, clips it into [0,1] and re-symmetrizes
// it by transpose averaging to restore the symmetry invariant before
// evaluating.
func MonteCarlo(t *team.Team, p engine.Params, o MonteCarloOptions) (*MonteCarloResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	o = o.withDefaults()

	baseL, baseV, baseR := t.Arrays()
	n := len(t.Members)

	margins := make([]float64, o.Iterations)
	var unstable int64

	var g errgroup.Group
	unstablePerWorker := make([]int, o.Workers)

	for w := 0; w < o.Workers; w++ {
		w := w
		// Static split: worker w owns trials [lo, hi).
		lo := w * o.Iterations / o.Workers
		hi := (w + 1) * o.Iterations / o.Workers
		g.Go(func() error {
			rng := rand.New(rand.NewSource(o.Seed + int64(w)))
			l := make([]float64, n)
			v := make([]float64, n)
			r := make([]float64, n)
			for it := lo; it < hi; it++ {
				perturbAttrs(rng, baseL, l, o.NoiseScale*attrNoiseFactor)
				perturbAttrs(rng, baseV, v, o.NoiseScale*attrNoiseFactor)
				perturbAttrs(rng, baseR, r, o.NoiseScale*minorNoiseFactor)
				s := perturbCompat(rng, t.Compat, o.NoiseScale*minorNoiseFactor)

				m, err := engine.Evaluate(l, v, r, s, p)
				if err != nil {
					return fmt.Errorf("stress: trial %d: %w", it, err)
				}
				margins[it] = m.Margin
				if !m.Stable {
					unstablePerWorker[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, u := range unstablePerWorker {
		unstable += int64(u)
	}

	sorted := make([]float64, len(margins))
	copy(sorted, margins)
	sort.Float64s(sorted)

	return &MonteCarloResult{
		Iterations:             o.Iterations,
		MeanMargin:             stat.Mean(margins, nil),
		MinMargin:              floats.Min(sorted),
		Percentile5:            stat.Quantile(0.05, stat.Empirical, sorted, nil),
		InstabilityProbability: float64(unstable) / float64(o.Iterations),
	}, nil
}

// perturbAttrs writes base plus Gaussian noise into dst, clamped to be
// non-negative.
func perturbAttrs(rng *rand.Rand, base, dst []float64, sigma float64) {
	for i, b := range base {
		val := b + rng.NormFloat64()*sigma
		if val < 0 {
			val = 0
		}
		dst[i] = val
	}
}

// perturbCompat returns a noised copy of s: independent Gaussian noise per
// cell, clipped into [0,1], then symmetrized by averaging with the
// transpose.
func perturbCompat(rng *rand.Rand, s *team.SymMatrix, sigma float64) *team.SymMatrix {
	out := s.Clone()
	n := out.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.SetAsym(i, j, out.At(i, j)+rng.NormFloat64()*sigma)
		}
	}
	out.Clip01()
	out.Symmetrize()
	return out
}
