package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535] (got %d)", c.Server.Port)
	}

	if c.Providers.Qloo.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Providers.Qloo.BaseURL); err != nil {
			return fmt.Errorf("providers.qloo.base_url: %w", err)
		}
	}

	if _, err := url.ParseRequestURI(c.Frontend.BaseURL); err != nil {
		return fmt.Errorf("frontend.base_url: %w", err)
	}

	return nil
}
