package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Config holds SpecGenie's application-level configuration, following the
// common cfg.Registerable and cfg.Validatable interfaces.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	SessionSecret         string
	SessionTTLSeconds     int
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	DictionaryPath        string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.SessionSecret, "session-secret", "", "HMAC key for signing session cookies")
	fs.IntVar(&c.SessionTTLSeconds, "session-ttl-seconds", 3600, "seconds a session's results and drafts are retained (1..604800)")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL for the session store (empty = not used)")
	fs.StringVar(&c.RedisAddr, "redis-addr", "", "Redis address for the session store (empty = not used)")
	fs.StringVar(&c.RedisPassword, "redis-password", "", "Redis password")
	fs.IntVar(&c.RedisDB, "redis-db", 0, "Redis database number")
	fs.StringVar(&c.DictionaryPath, "dictionary-path", "", "YAML file overriding the built-in keyword dictionary (empty = built-in)")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Session cookies are unverifiable without a signing key
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}

	if c.SessionTTLSeconds <= 0 || c.SessionTTLSeconds > 604800 {
		errs = append(errs, fmt.Errorf("invalid SESSION_TTL_SECONDS %d (must be 1..604800)", c.SessionTTLSeconds))
	}

	// Exactly one session store backend may be selected
	if c.DatabaseURL != "" && c.RedisAddr != "" {
		errs = append(errs, errors.New("DATABASE_URL and REDIS_ADDR are mutually exclusive, pick one session store"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
