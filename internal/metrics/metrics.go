// Package metrics holds the daemon's Prometheus instrumentation. Collectors
// are registered on the default registry and served by promhttp in main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Evaluations counts evaluation requests, labeled by outcome.
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teamgrav",
		Name:      "evaluations_total",
		Help:      "Number of team evaluations, by outcome (ok|error).",
	}, []string{"outcome"})

	// Margin exports the latest stability margin per team.
	Margin = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "teamgrav",
		Name:      "stability_margin",
		Help:      "Latest stability margin (binding minus friction) per team.",
	}, []string{"team"})

	// StressRuns counts robustness test invocations.
	StressRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "teamgrav",
		Name:      "stress_runs_total",
		Help:      "Number of robustness test runs served.",
	})

	// AdvisoriesFired counts advisory rule firings, by severity.
	AdvisoriesFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teamgrav",
		Name:      "advisories_fired_total",
		Help:      "Number of advisories fired, by severity.",
	}, []string{"severity"})
)
