package drive

import (
	"fmt"
	"os"
)

// Config holds Google Drive upload parameters.
type Config struct {
	// FolderID is the Drive folder that receives all generated certificates,
	// organized into per-person subfolders.
	FolderID    string `toml:"folder_id"`
	Credentials string `toml:"credentials"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	FolderID    string
	Credentials string
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
	if overlay.FolderID != "" {
		c.FolderID = overlay.FolderID
	}
	if overlay.Credentials != "" {
		c.Credentials = overlay.Credentials
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.FolderID != "" {
		if v := os.Getenv(env.FolderID); v != "" {
			c.FolderID = v
		}
	}
	if env.Credentials != "" {
		if v := os.Getenv(env.Credentials); v != "" {
			c.Credentials = v
		}
	}
}

func (c *Config) validate() error {
	if c.FolderID == "" {
		return fmt.Errorf("folder_id required")
	}
	if c.Credentials == "" {
		return fmt.Errorf("credentials required")
	}
	return nil
}
