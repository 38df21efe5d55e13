package render

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds certificate rendering parameters.
type Config struct {
	// FontPath points to a TTF file used for certificate text.
	// When empty, the embedded Go Regular face is used.
	FontPath string `toml:"font_path"`
	// DPI controls the raster resolution of the rendered page.
	DPI int `toml:"dpi"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	FontPath string
	DPI      string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.FontPath != "" {
		c.FontPath = overlay.FontPath
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
}

func (c *Config) loadDefaults() {
	if c.DPI == 0 {
		c.DPI = 150
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.FontPath != "" {
		if v := os.Getenv(env.FontPath); v != "" {
			c.FontPath = v
		}
	}
	if env.DPI != "" {
		if v := os.Getenv(env.DPI); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DPI = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.DPI < 72 || c.DPI > 600 {
		return fmt.Errorf("dpi out of range: %d", c.DPI)
	}
	return nil
}
