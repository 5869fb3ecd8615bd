package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/stress"
	"github.com/teamgrav/teamgrav/internal/team"
)

func main() {
	teamPath := flag.String("team", "", "path to a YAML team file (empty: built-in demo team)")
	iterations := flag.Int("iterations", stress.DefaultIterations, "Monte Carlo trial count")
	noise := flag.Float64("noise", stress.DefaultNoiseScale, "noise scale")
	seed := flag.Int64("seed", 42, "random seed")
	workers := flag.Int("workers", 0, "Monte Carlo workers (0: GOMAXPROCS)")
	kappa := flag.Float64("kappa", engine.DefaultKappa, "coupling constant")
	epsilon := flag.Float64("epsilon", engine.DefaultEpsilon, "gravity regularization constant")
	flag.Parse()

	// Report goes to stdout; diagnostics stay on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	t := team.Demo()
	if *teamPath != "" {
		loaded, dropped, err := team.LoadFile(*teamPath)
		if err != nil {
			slog.Error("failed to load team file", "path", *teamPath, "err", err)
			os.Exit(1)
		}
		if dropped > 0 {
			slog.Warn("dropped edges referencing unknown members", "count", dropped)
		}
		t = loaded
	}

	p := engine.Params{Kappa: *kappa, Epsilon: *epsilon}
	opts := stress.MonteCarloOptions{
		Iterations: *iterations,
		NoiseScale: *noise,
		Seed:       *seed,
		Workers:    *workers,
	}

	if err := stress.WriteReport(os.Stdout, t, p, opts); err != nil {
		slog.Error("stress report failed", "err", err)
		os.Exit(1)
	}
}
