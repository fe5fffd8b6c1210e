package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr    string
	LogLevel    string
	LogFormat   string
	Environment string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBSchema    string
	DBMaxConns  int32
	DBMinConns  int32

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:    EnvString("GATE_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:    EnvString("GATE_LOG_LEVEL", "info"),
		LogFormat:   EnvString("GATE_LOG_FORMAT", "json"),
		Environment: EnvString("GATE_ENV", "development"),

		ReadHeaderTimeout: EnvDuration("GATE_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("GATE_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("GATE_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("GATE_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("GATE_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("GATE_DATABASE_URL", ""),
		DBSchema:    EnvString("GATE_DB_SCHEMA", "gate"),
		DBMaxConns:  EnvInt32("GATE_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("GATE_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("GATE_READINESS_REQUIRE_DB", false),
	}
}
