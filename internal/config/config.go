package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teamgrav/teamgrav/internal/engine"
	"github.com/teamgrav/teamgrav/internal/stress"
	"github.com/teamgrav/teamgrav/internal/team"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort    = 8080
	DefaultSnapshotTTL = 5 * time.Minute
	DefaultStreamTick  = 5 * time.Second
)

// Config is the top-level configuration. Fields map 1:1 to
// config.example.yaml.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Stress StressConfig `yaml:"stress"`
	Server ServerConfig `yaml:"server"`
	Advice AdviceConfig `yaml:"advice"`
}

// EngineConfig overrides the model constants.
type EngineConfig struct {
	// Kappa is the coupling constant for pairwise binding energy.
	Kappa float64 `yaml:"kappa"`

	// Epsilon regularizes the gravity denominator.
	Epsilon float64 `yaml:"epsilon"`

	// DefaultCompat fills matrix cells for member pairs with no edge row.
	DefaultCompat float64 `yaml:"default_compat"`
}

// Params lowers the engine section into engine.Params.
func (e EngineConfig) Params() engine.Params {
	return engine.Params{Kappa: e.Kappa, Epsilon: e.Epsilon}
}

// StressConfig configures the robustness tester.
type StressConfig struct {
	// Iterations is the Monte Carlo trial count.
	Iterations int `yaml:"iterations"`

	// NoiseScale scales every noise standard deviation.
	NoiseScale float64 `yaml:"noise_scale"`

	// Workers is the Monte Carlo fan-out width; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Seed makes runs reproducible. 0 is a valid seed, not "random".
	Seed int64 `yaml:"seed"`
}

// Options lowers the stress section into stress.MonteCarloOptions.
func (s StressConfig) Options() stress.MonteCarloOptions {
	return stress.MonteCarloOptions{
		Iterations: s.Iterations,
		NoiseScale: s.NoiseScale,
		Workers:    s.Workers,
		Seed:       s.Seed,
	}
}

// ServerConfig holds the daemon's listener settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, WebSocket stream and /metrics
	// endpoint listen on.
	HTTPPort int `yaml:"http_port"`

	// SnapshotTTL is how long an evaluation stays live in the store
	// without being refreshed.
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`

	// StreamTick is the WebSocket broadcast interval.
	StreamTick time.Duration `yaml:"stream_tick"`
}

// AdviceConfig holds advisory rules and webhook delivery targets.
type AdviceConfig struct {
	Rules    []AdviceRule    `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AdviceRule defines one threshold-based advisory condition.
type AdviceRule struct {
	// Name is the human-readable advisory identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "margin < 0" or "max_resistance > 1".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Message is the advice text attached when the rule fires.
	Message string `yaml:"message"`

	// Cooldown suppresses re-fires for this duration after firing.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable holding the URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values. It is valid
// as-is, so the daemon can run without a config file.
func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Kappa:         engine.DefaultKappa,
			Epsilon:       engine.DefaultEpsilon,
			DefaultCompat: team.DefaultCompat,
		},
		Stress: StressConfig{
			Iterations: stress.DefaultIterations,
			NoiseScale: stress.DefaultNoiseScale,
		},
		Server: ServerConfig{
			HTTPPort:    DefaultHTTPPort,
			SnapshotTTL: DefaultSnapshotTTL,
			StreamTick:  DefaultStreamTick,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Engine.Epsilon <= 0 {
		return fmt.Errorf("engine.epsilon must be positive")
	}
	if cfg.Engine.DefaultCompat < 0 || cfg.Engine.DefaultCompat > 1 {
		return fmt.Errorf("engine.default_compat must be in [0,1]")
	}
	if cfg.Stress.Iterations <= 0 {
		return fmt.Errorf("stress.iterations must be positive")
	}
	if cfg.Stress.NoiseScale < 0 {
		return fmt.Errorf("stress.noise_scale must be non-negative")
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range")
	}
	if cfg.Server.SnapshotTTL <= 0 {
		return fmt.Errorf("server.snapshot_ttl must be positive")
	}
	if cfg.Server.StreamTick <= 0 {
		return fmt.Errorf("server.stream_tick must be positive")
	}
	for i, rule := range cfg.Advice.Rules {
		if rule.Name == "" {
			return fmt.Errorf("advice.rules[%d]: name is required", i)
		}
		if rule.Condition == "" {
			return fmt.Errorf("advice.rules[%d] %q: condition is required", i, rule.Name)
		}
		switch rule.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("advice.rules[%d] %q: unknown severity %q", i, rule.Name, rule.Severity)
		}
	}
	for i, wh := range cfg.Advice.Webhooks {
		switch wh.Type {
		case "slack", "http":
		default:
			return fmt.Errorf("advice.webhooks[%d]: unknown type %q", i, wh.Type)
		}
	}
	return nil
}
