package sheets

import (
	"fmt"
	"os"
)

// Config holds Google Sheets access parameters.
type Config struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	Credentials   string `toml:"credentials"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	SpreadsheetID string
	Credentials   string
}

// Finalize applies environment variable overrides and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.SpreadsheetID != "" {
		c.SpreadsheetID = overlay.SpreadsheetID
	}
	if overlay.Credentials != "" {
		c.Credentials = overlay.Credentials
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.SpreadsheetID != "" {
		if v := os.Getenv(env.SpreadsheetID); v != "" {
			c.SpreadsheetID = v
		}
	}
	if env.Credentials != "" {
		if v := os.Getenv(env.Credentials); v != "" {
			c.Credentials = v
		}
	}
}

func (c *Config) validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet_id required")
	}
	if c.Credentials == "" {
		return fmt.Errorf("credentials required")
	}
	return nil
}
