package advice

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/teamgrav/teamgrav/internal/config"
	"github.com/teamgrav/teamgrav/internal/metrics"
	"github.com/teamgrav/teamgrav/internal/store"
)

const (
	defaultCooldown   = 15 * time.Minute
	maxHistoryLen     = 200
	recentWindowHours = 1
)

// StatusGreen is the fallback advisory text when no rule fires for a team.
const StatusGreen = "System is stable. Focus on increasing integration."

// Advisory is a single advisory event produced by the rule engine.
type Advisory struct {
	ID         string     `json:"id"`
	RuleName   string     `json:"rule_name"`
	Team       string     `json:"team"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	Value      float64    `json:"value"`
	FiredAt    time.Time  `json:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	State      string     `json:"state"` // "firing" | "resolved" | "ok"
}

// StatusGreenAdvisory is the advisory attached to an evaluation when no rule
// fires: the all-clear the dashboard shows in place of tactical advice. It is
// ephemeral — never stored, never delivered to webhooks.
func StatusGreenAdvisory(team string) Advisory {
	return Advisory{
		ID:       fmt.Sprintf("status-green:%s", team),
		RuleName: "status-green",
		Team:     team,
		Severity: "info",
		Message:  StatusGreen,
		FiredAt:  time.Now(),
		State:    "ok",
	}
}

// DefaultRules returns the built-in advisory rules used when the config
// defines none. They reproduce the dashboard's original tactical advice.
func DefaultRules() []config.AdviceRule {
	return []config.AdviceRule{
		{
			Name:      "resistance-spike",
			Condition: "max_resistance > 1",
			Severity:  "critical",
			Message:   "A member's resistance is too high. Immediate rest required.",
		},
		{
			Name:      "leader-burnout",
			Condition: "leader_capacity < 3",
			Severity:  "warning",
			Message:   "The highest-gravity member has no slack. Burnout imminent.",
		},
		{
			Name:      "margin-collapse",
			Condition: "margin < 0",
			Severity:  "critical",
			Message:   "Binding energy no longer covers friction. Team is modeled as collapsing.",
		},
	}
}

// Engine evaluates advisory rules against incoming snapshots and delivers
// webhook notifications when rules fire or resolve.
//
// Engine is safe for concurrent use.
type Engine struct {
	rules    []config.AdviceRule
	webhooks []config.WebhookConfig

	mu       sync.Mutex
	active   map[string]*Advisory // key: "ruleName:team"
	lastFire map[string]time.Time // last fire time per key, for cooldown
	history  []*Advisory          // recently resolved advisories
	client   *http.Client
}

// New creates an Engine from the advice configuration. When cfg defines no
// rules the built-in defaults apply.
func New(cfg config.AdviceConfig) *Engine {
	rules := cfg.Rules
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{
		rules:    rules,
		webhooks: cfg.Webhooks,
		active:   make(map[string]*Advisory),
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate tests all rules against snap. Advisories that fire are stored and
// delivered asynchronously; advisories whose condition is no longer true are
// resolved. It returns the advisories currently firing for snap's team, so
// API responses can include them inline.
func (e *Engine) Evaluate(snap *store.Snapshot) []Advisory {
	now := time.Now()
	var firing []Advisory

	for _, rule := range e.rules {
		key := rule.Name + ":" + snap.Team
		fires, value := evalCondition(rule.Condition, snap)

		e.mu.Lock()

		if fires {
			if a, ok := e.active[key]; ok {
				// Still firing: keep the advisory but track the current
				// trigger value, not the one captured at first fire.
				a.Value = value
				firing = append(firing, *a)
				e.mu.Unlock()
				continue
			}
			cooldown := rule.Cooldown
			if cooldown <= 0 {
				cooldown = defaultCooldown
			}
			if now.Sub(e.lastFire[key]) <= cooldown {
				e.mu.Unlock()
				continue
			}
			sev := rule.Severity
			if sev == "" {
				sev = "warning"
			}
			msg := rule.Message
			if msg == "" {
				msg = fmt.Sprintf("%s = %.2f", rule.Condition, value)
			}
			a := &Advisory{
				ID:       fmt.Sprintf("%s:%s:%d", rule.Name, snap.Team, now.UnixNano()),
				RuleName: rule.Name,
				Team:     snap.Team,
				Severity: sev,
				Value:    value,
				Message:  msg,
				FiredAt:  now,
				State:    "firing",
			}
			e.active[key] = a
			e.lastFire[key] = now
			firing = append(firing, *a)
			cp := *a
			e.mu.Unlock()

			slog.Warn("advice: rule fired",
				"rule", rule.Name,
				"team", snap.Team,
				"value", value,
				"severity", sev,
			)
			metrics.AdvisoriesFired.WithLabelValues(sev).Inc()
			go e.deliver(&cp)
			continue
		}

		if a, ok := e.active[key]; ok && a.State == "firing" {
			resolved := now
			a.State = "resolved"
			a.ResolvedAt = &resolved
			delete(e.active, key)

			e.history = append(e.history, a)
			if len(e.history) > maxHistoryLen {
				e.history = e.history[len(e.history)-maxHistoryLen:]
			}
			cp := *a
			e.mu.Unlock()

			slog.Info("advice: rule resolved", "rule", rule.Name, "team", snap.Team)
			go e.deliver(&cp)
			continue
		}
		e.mu.Unlock()
	}

	return firing
}

// Active returns copies of all currently firing advisories plus any resolved
// within the past hour.
func (e *Engine) Active() []*Advisory {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := time.Now().Add(-recentWindowHours * time.Hour)
	out := make([]*Advisory, 0, len(e.active))

	for _, a := range e.active {
		cp := *a
		out = append(out, &cp)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}
