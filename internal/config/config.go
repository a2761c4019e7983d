// Package config loads coreflow's runtime configuration from environment
// variables (with an optional .env overlay) and an optional YAML file,
// following the same env-first, YAML-fills-gaps precedence the rest of the
// ambient stack uses.
package config

// ObsConfig configures the OpenTelemetry exporters observability.InitOTel
// wires up.
type ObsConfig struct {
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	Environment    string `yaml:"environment"`
	OTLP           string `yaml:"otlp_endpoint"`
}

// CheckpointConfig tunes the differential checkpointer.
type CheckpointConfig struct {
	BaseInterval  int `yaml:"base_interval"`
	MaxChainLength int `yaml:"max_chain_length"`
	MinDiffSize   int `yaml:"min_diff_size"`
}

// ContextWindowConfig tunes the context manager's truncation behavior.
type ContextWindowConfig struct {
	Model                    string `yaml:"model"`
	ReservedTokens           int    `yaml:"reserved_tokens"`
	TokensPerMessageOverhead int    `yaml:"tokens_per_message_overhead"`
	Strategy                 string `yaml:"strategy"`
}

// QualityConfig tunes the generate/judge retry gate.
type QualityConfig struct {
	Threshold  float64 `yaml:"threshold"`
	MaxRetries int     `yaml:"max_retries"`
	Strategy   string  `yaml:"strategy"`
}

// Config is coreflow's top-level runtime configuration.
type Config struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
	Workdir  string `yaml:"workdir"`

	Obs           ObsConfig           `yaml:"obs"`
	Checkpoint    CheckpointConfig    `yaml:"checkpoint"`
	ContextWindow ContextWindowConfig `yaml:"context_window"`
	Quality       QualityConfig       `yaml:"quality"`
}

func defaults() Config {
	cfg := Config{}
	cfg.LogLevel = "info"
	cfg.Obs.ServiceName = "coreflow"
	cfg.Obs.Environment = "dev"
	cfg.Checkpoint.BaseInterval = 10
	cfg.Checkpoint.MaxChainLength = 10
	cfg.Checkpoint.MinDiffSize = 1024
	cfg.ContextWindow.ReservedTokens = 1024
	cfg.ContextWindow.TokensPerMessageOverhead = 4
	cfg.ContextWindow.Strategy = "drop_oldest"
	cfg.Quality.Threshold = 0.8
	cfg.Quality.MaxRetries = 3
	cfg.Quality.Strategy = "from_scratch"
	return cfg
}
