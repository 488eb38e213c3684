package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Books.Timeout <= 0 {
		return fmt.Errorf("books.timeout must be > 0 (got %s)", c.Books.Timeout)
	}

	if strings.TrimSpace(c.Owner.Label) == "" {
		return fmt.Errorf("owner.label must not be empty")
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 when the limit is enabled")
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("dsn is required for the %s driver", DriverPostgres)
		}
		if s.MinConns > s.MaxConns {
			return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", s.MinConns, s.MaxConns)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", s.Driver, DriverPostgres, DriverMemory)
	}
	return nil
}
