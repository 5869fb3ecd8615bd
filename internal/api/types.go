package api

import (
	"github.com/teamgrav/teamgrav/internal/advice"
	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/store"
	"github.com/teamgrav/teamgrav/internal/stress"
	"github.com/teamgrav/teamgrav/internal/team"
)

// TeamRequest is the row-table payload shared by the evaluate, optimize and
// stress endpoints.
type TeamRequest struct {
	// Team is the snapshot's name; it keys the store. Defaults to "default".
	Team string `json:"team"`

	Nodes []team.NodeRow `json:"nodes"`
	Edges []team.EdgeRow `json:"edges"`

	// Kappa and Epsilon override the configured model constants when > 0.
	Kappa   float64 `json:"kappa,omitempty"`
	Epsilon float64 `json:"epsilon,omitempty"`
}

// EvaluateResponse is the payload for POST /api/v1/evaluate.
type EvaluateResponse struct {
	Team         string              `json:"team"`
	Members      []store.MemberState `json:"members"`
	Binding      float64             `json:"binding"`
	Friction     float64             `json:"friction"`
	Margin       float64             `json:"margin"`
	Stable       bool                `json:"stable"`
	DroppedEdges int                 `json:"dropped_edges"`
	Advisories   []advice.Advisory   `json:"advisories"`
}

// OptimizeRequest adds the optimizer inputs to the shared team payload.
type OptimizeRequest struct {
	TeamRequest

	// Budget caps the total cost of accepted suggestions.
	Budget float64 `json:"budget"`

	// Step is the attribute change per intervention; defaults to 0.1.
	Step float64 `json:"step,omitempty"`

	// CostR and CostS price interventions per member / per pair.
	// When absent, unit costs apply.
	CostR []float64   `json:"cost_r,omitempty"`
	CostS [][]float64 `json:"cost_s,omitempty"`
}

// OptimizeResponse is the payload for POST /api/v1/optimize.
type OptimizeResponse struct {
	Team        string           `json:"team"`
	Suggestions []SuggestionView `json:"suggestions"`
	TotalSpend  float64          `json:"total_spend"`
	Budget      float64          `json:"budget"`
}

// SuggestionView is one suggestion with member indices resolved to names.
type SuggestionView struct {
	Kind    string  `json:"kind"`
	Target  string  `json:"target"`
	Partner string  `json:"partner,omitempty"`
	Gain    float64 `json:"gain"`
	Cost    float64 `json:"cost"`
	ROI     float64 `json:"roi"`
}

// StressRequest adds robustness tester knobs to the shared team payload.
type StressRequest struct {
	TeamRequest

	// Iterations and NoiseScale override the configured Monte Carlo
	// options when > 0; Seed and Workers pass through as-is.
	Iterations int     `json:"iterations,omitempty"`
	NoiseScale float64 `json:"noise_scale,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
	Workers    int     `json:"workers,omitempty"`
}

// StressResponse is the payload for POST /api/v1/stress.
type StressResponse struct {
	Team       string                   `json:"team"`
	BaseMargin float64                  `json:"base_margin"`
	MonteCarlo *stress.MonteCarloResult `json:"monte_carlo"`
	WorstCase  *stress.WorstCaseReport  `json:"worst_case"`
}

// TeamsResponse is the payload for GET /api/v1/teams.
type TeamsResponse struct {
	Teams       []store.Snapshot `json:"teams"`
	GeneratedAt string           `json:"generated_at"` // RFC3339
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	TeamCount     int     `json:"team_count"`
	StableCount   int     `json:"stable_count"`
	UnstableCount int     `json:"unstable_count"`
	MeanMargin    float64 `json:"mean_margin"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// suggestionView resolves indices against the member name list.
func suggestionView(s engine.Suggestion, names []string) SuggestionView {
	v := SuggestionView{
		Kind:   s.Kind,
		Target: names[s.Target],
		Gain:   s.Gain,
		Cost:   s.Cost,
		ROI:    s.ROI,
	}
	if s.Partner >= 0 {
		v.Partner = names[s.Partner]
	}
	return v
}
