package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

// Load starts from the defaults, applies an optional config.yaml/config.yml
// from the current working directory, then applies environment variables
// (optionally from .env), which take precedence over the YAML file.
func Load() (Config, error) {
	// Use Overload so .env values override existing OS environment variables,
	// matching local-dev expectations for repo-level configuration.
	_ = godotenv.Overload()

	cfg := defaults()

	if err := mergeYAMLFile(&cfg); err != nil {
		return cfg, err
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_PATH")); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("COREFLOW_WORKDIR")); v != "" {
		cfg.Workdir = v
	}

	if v := strings.TrimSpace(os.Getenv("OTEL_SERVICE_NAME")); v != "" {
		cfg.Obs.ServiceName = v
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_SERVICE_VERSION")); v != "" {
		cfg.Obs.ServiceVersion = v
	}
	if v := strings.TrimSpace(firstNonEmpty(os.Getenv("DEPLOYMENT_ENVIRONMENT"), os.Getenv("APP_ENV"))); v != "" {
		cfg.Obs.Environment = v
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" {
		cfg.Obs.OTLP = v
	}

	cfg.Checkpoint.BaseInterval = intFromEnv("CHECKPOINT_BASE_INTERVAL", cfg.Checkpoint.BaseInterval)
	cfg.Checkpoint.MaxChainLength = intFromEnv("CHECKPOINT_MAX_CHAIN_LENGTH", cfg.Checkpoint.MaxChainLength)
	cfg.Checkpoint.MinDiffSize = intFromEnv("CHECKPOINT_MIN_DIFF_SIZE", cfg.Checkpoint.MinDiffSize)

	if v := strings.TrimSpace(os.Getenv("CONTEXT_WINDOW_MODEL")); v != "" {
		cfg.ContextWindow.Model = v
	}
	cfg.ContextWindow.ReservedTokens = intFromEnv("CONTEXT_WINDOW_RESERVED_TOKENS", cfg.ContextWindow.ReservedTokens)
	cfg.ContextWindow.TokensPerMessageOverhead = intFromEnv("CONTEXT_WINDOW_MESSAGE_OVERHEAD", cfg.ContextWindow.TokensPerMessageOverhead)
	if v := strings.TrimSpace(os.Getenv("CONTEXT_WINDOW_STRATEGY")); v != "" {
		cfg.ContextWindow.Strategy = v
	}

	cfg.Quality.Threshold = floatFromEnv("QUALITY_THRESHOLD", cfg.Quality.Threshold)
	cfg.Quality.MaxRetries = intFromEnv("QUALITY_MAX_RETRIES", cfg.Quality.MaxRetries)
	if v := strings.TrimSpace(os.Getenv("QUALITY_RETRY_STRATEGY")); v != "" {
		cfg.Quality.Strategy = v
	}

	return cfg, nil
}

// mergeYAMLFile overlays an optional config.yaml/config.yml from the current
// working directory onto cfg. yaml.Unmarshal only overwrites struct fields
// that appear in the document, so fields the file omits keep their values.
// Load calls this before reading environment variables, so env values take
// precedence over the file.
func mergeYAMLFile(cfg *Config) error {
	var data []byte
	for _, p := range []string{"config.yaml", "config.yml"} {
		b, err := os.ReadFile(p)
		if err == nil {
			data = b
			break
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", p, err)
		}
	}
	if len(data) == 0 {
		return nil
	}

	overlay := *cfg
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	*cfg = overlay
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func intFromEnv(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
