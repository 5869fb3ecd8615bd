package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/teamgrav/teamgrav/internal/advice"
	"github.com/teamgrav/teamgrav/internal/config"
	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/metrics"
	"github.com/teamgrav/teamgrav/internal/store"
	"github.com/teamgrav/teamgrav/internal/stress"
	"github.com/teamgrav/teamgrav/internal/team"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	store  *store.Store
	advice *advice.Engine
	cfg    func() *config.Config // re-read per request so hot reload applies
	mux    *http.ServeMux
}

// New creates a Handler wired to the snapshot store and advice engine and
// registers all routes. cfg is called per request, so a caller that swaps
// the config under hot reload takes effect without restarting.
func New(st *store.Store, adv *advice.Engine, cfg func() *config.Config) http.Handler {
	h := &Handler{store: st, advice: adv, cfg: cfg, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/evaluate", h.evaluate)
	h.mux.HandleFunc("/api/v1/optimize", h.optimize)
	h.mux.HandleFunc("/api/v1/stress", h.stressTest)
	h.mux.HandleFunc("/api/v1/teams", h.listTeams)
	h.mux.HandleFunc("/api/v1/teams/", h.getTeam) // subtree — extracts {name}
	h.mux.HandleFunc("/api/v1/advisories", h.advisories)
	h.mux.HandleFunc("/api/v1/health", h.health)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// evaluate handles POST /api/v1/evaluate: resolve the row tables, run the
// evaluator, store the snapshot and return metrics plus firing advisories.
func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	snap, err := h.runEvaluation(&req)
	if err != nil {
		metrics.Evaluations.WithLabelValues("error").Inc()
		simErr(w, err)
		return
	}
	metrics.Evaluations.WithLabelValues("ok").Inc()
	metrics.Margin.WithLabelValues(snap.Team).Set(snap.Margin)

	firing := h.advice.Evaluate(snap)
	if len(firing) == 0 {
		// Nothing to warn about: the dashboard shows the all-clear instead
		// of an empty advice panel.
		firing = []advice.Advisory{advice.StatusGreenAdvisory(snap.Team)}
	}

	jsonResp(w, http.StatusOK, EvaluateResponse{
		Team:         snap.Team,
		Members:      snap.Members,
		Binding:      snap.Binding,
		Friction:     snap.Friction,
		Margin:       snap.Margin,
		Stable:       snap.Stable,
		DroppedEdges: snap.DroppedEdges,
		Advisories:   firing,
	})
}

// optimize handles POST /api/v1/optimize: rank budget-feasible
// interventions for the submitted snapshot.
func (h *Handler) optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	t, _, err := team.Resolve(req.Nodes, req.Edges, h.cfg().Engine.DefaultCompat)
	if err != nil {
		simErr(w, err)
		return
	}

	costs, err := h.costModel(&req, len(t.Members))
	if err != nil {
		simErr(w, err)
		return
	}

	step := req.Step
	if step <= 0 {
		step = engine.DefaultStep
	}

	suggestions, err := engine.SuggestTeam(t, costs, req.Budget, step, h.params(&req.TeamRequest))
	if err != nil {
		simErr(w, err)
		return
	}

	names := t.Names()
	views := make([]SuggestionView, 0, len(suggestions))
	var spend float64
	for _, s := range suggestions {
		views = append(views, suggestionView(s, names))
		spend += s.Cost
	}

	jsonResp(w, http.StatusOK, OptimizeResponse{
		Team:        teamName(req.Team),
		Suggestions: views,
		TotalSpend:  spend,
		Budget:      req.Budget,
	})
}

// stressTest handles POST /api/v1/stress: Monte Carlo plus the three
// worst-case scenarios for the submitted snapshot.
func (h *Handler) stressTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req StressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	t, _, err := team.Resolve(req.Nodes, req.Edges, h.cfg().Engine.DefaultCompat)
	if err != nil {
		simErr(w, err)
		return
	}

	opts := h.cfg().Stress.Options()
	if req.Iterations > 0 {
		opts.Iterations = req.Iterations
	}
	if req.NoiseScale > 0 {
		opts.NoiseScale = req.NoiseScale
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}

	p := h.params(&req.TeamRequest)
	mc, err := stress.MonteCarlo(t, p, opts)
	if err != nil {
		simErr(w, err)
		return
	}
	wc, err := stress.WorstCase(t, p)
	if err != nil {
		simErr(w, err)
		return
	}
	metrics.StressRuns.Inc()

	jsonResp(w, http.StatusOK, StressResponse{
		Team:       teamName(req.Team),
		BaseMargin: wc.BaseMargin,
		MonteCarlo: mc,
		WorstCase:  wc,
	})
}

// listTeams handles GET /api/v1/teams: all live evaluation snapshots.
func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jsonResp(w, http.StatusOK, BuildTeams(h.store))
}

// BuildTeams assembles the live snapshot list. The WebSocket hub broadcasts
// the same payload the REST endpoint serves.
func BuildTeams(st *store.Store) TeamsResponse {
	entries := st.List()
	teams := make([]store.Snapshot, 0, len(entries))
	for _, e := range entries {
		teams = append(teams, *e.Snapshot)
	}
	return TeamsResponse{
		Teams:       teams,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// getTeam handles GET /api/v1/teams/{name}: one live snapshot.
func (h *Handler) getTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/v1/teams/")
	if name == "" {
		h.listTeams(w, r)
		return
	}

	e, ok := h.store.Get(name)
	if !ok || time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "team not found")
		return
	}
	jsonResp(w, http.StatusOK, e.Snapshot)
}

// advisories handles GET /api/v1/advisories: firing plus recently resolved.
func (h *Handler) advisories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.advice.Active())
}

// health handles GET /api/v1/health: counts and mean margin over live teams.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := HealthResponse{TeamCount: len(entries)}
	if len(entries) == 0 {
		jsonResp(w, http.StatusOK, resp)
		return
	}

	var total float64
	for _, e := range entries {
		total += e.Snapshot.Margin
		if e.Snapshot.Stable {
			resp.StableCount++
		} else {
			resp.UnstableCount++
		}
	}
	resp.MeanMargin = total / float64(len(entries))
	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

// runEvaluation resolves req into a Team, evaluates it and stores the
// resulting snapshot.
func (h *Handler) runEvaluation(req *TeamRequest) (*store.Snapshot, error) {
	t, dropped, err := team.Resolve(req.Nodes, req.Edges, h.cfg().Engine.DefaultCompat)
	if err != nil {
		return nil, err
	}

	m, err := engine.EvaluateTeam(t, h.params(req))
	if err != nil {
		return nil, err
	}

	members := make([]store.MemberState, len(t.Members))
	for i, mem := range t.Members {
		members[i] = store.MemberState{
			Name:        mem.Name,
			Integration: mem.Integration,
			Capacity:    mem.Capacity,
			Resistance:  mem.Resistance,
			Gravity:     m.Gravity[i],
		}
	}

	snap := &store.Snapshot{
		Team:         teamName(req.Team),
		Members:      members,
		Binding:      m.Binding,
		Friction:     m.Friction,
		Margin:       m.Margin,
		Stable:       m.Stable,
		DroppedEdges: dropped,
	}
	h.store.Put(snap)
	return snap, nil
}

// params merges per-request overrides onto the configured model constants.
func (h *Handler) params(req *TeamRequest) engine.Params {
	p := h.cfg().Engine.Params()
	if req.Kappa > 0 {
		p.Kappa = req.Kappa
	}
	if req.Epsilon > 0 {
		p.Epsilon = req.Epsilon
	}
	return p
}

// costModel builds the optimizer cost model from the request, defaulting to
// unit costs when the tables are absent.
func (h *Handler) costModel(req *OptimizeRequest, n int) (engine.CostModel, error) {
	costs := engine.UnitCosts(n)
	if req.CostR != nil {
		costs.Resistance = req.CostR
	}
	if req.CostS != nil {
		m, err := team.FromRows(req.CostS)
		if err != nil {
			return engine.CostModel{}, err
		}
		costs.Compat = m
	}
	return costs, nil
}

func teamName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// simErr maps engine and boundary errors to a user-visible simulation error
// without crashing the host process. Shape mismatches get 422; everything
// else is a 400.
func simErr(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, engine.ErrShapeMismatch) || errors.Is(err, team.ErrSizeMismatch) || errors.Is(err, team.ErrNotSquare) {
		code = http.StatusUnprocessableEntity
	}
	jsonErr(w, code, fmt.Sprintf("simulation error: %v", err))
}
