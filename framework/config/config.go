package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Actions ActionsConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Port  string
}

type LogConfig struct {
	Level  string // trace | debug | info | warning | error
	Format string // text | json
}

// ActionsConfig tunes method-dependency resolution.
type ActionsConfig struct {
	// StrictParameters turns a parameter with no attribute, class hint or
	// default into an error instead of a nil argument.
	StrictParameters bool
	// SaveResolved writes route-bound records back into the attributes.
	SaveResolved bool
	// Tracing enables OpenTelemetry spans around action calls.
	Tracing bool
	// TraceEndpoint is the OTLP/HTTP collector (host:port) spans are sent to.
	TraceEndpoint string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	debug := envBool("APP_DEBUG", true)
	defaultLevel := "info"
	if debug {
		defaultLevel = "debug"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoActions"),
			Env:   env("APP_ENV", "local"),
			Debug: debug,
			URL:   env("APP_URL", "http://localhost"),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", defaultLevel),
			Format: env("LOG_FORMAT", "text"),
		},
		Actions: ActionsConfig{
			StrictParameters: envBool("ACTIONS_STRICT_PARAMETERS", false),
			SaveResolved:     envBool("ACTIONS_SAVE_RESOLVED", true),
			Tracing:          envBool("ACTIONS_TRACING", false),
			TraceEndpoint:    env("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
