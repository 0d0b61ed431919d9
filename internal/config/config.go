// Package config handles runtime settings for the server, applied once
// at process start: defaults first, then environment overlay.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Its presence selects the
//     networked backend; when empty the embedded backend is used.
//   - SQLitePath: database file for the embedded backend.
//   - SessionKey: HMAC secret for signing session cookies (HS256).
//   - SessionTTL: session cookie lifetime.
//   - TLSCertFile / TLSKeyFile: optional PEM pair; when both are set the
//     server listens with TLS and marks cookies Secure.
type Config struct {
	Addr        string
	DatabaseDSN string
	SQLitePath  string
	SessionKey  string
	SessionTTL  time.Duration
	TLSCertFile string
	TLSKeyFile  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SessionKey must be overridden in production.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = ""
	c.SQLitePath = "tasktrack.db"
	c.SessionKey = ""
	c.SessionTTL = 72 * time.Hour
}

// Load builds a Config from defaults overlaid with environment variables.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}

// UsePostgres reports whether the networked backend was selected.
func (c *Config) UsePostgres() bool { return c.DatabaseDSN != "" }

// UseTLS reports whether an HTTPS cert/key pair was configured.
func (c *Config) UseTLS() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := os.LookupEnv("SESSION_KEY"); ok {
		cfg.SessionKey = v
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("TLS_CERT_FILE"); ok {
		cfg.TLSCertFile = v
	}
	if v, ok := os.LookupEnv("TLS_KEY_FILE"); ok {
		cfg.TLSKeyFile = v
	}
}
