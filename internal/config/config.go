package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/corvalle/certilab/pkg/database"
	"github.com/corvalle/certilab/pkg/drive"
	"github.com/corvalle/certilab/pkg/render"
	"github.com/corvalle/certilab/pkg/sheets"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCertilabEnv             = "CERTILAB_ENV"
	EnvCertilabShutdownTimeout = "CERTILAB_SHUTDOWN_TIMEOUT"
	EnvCertilabVersion         = "CERTILAB_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "CERTILAB_DB_HOST",
	Port:            "CERTILAB_DB_PORT",
	Name:            "CERTILAB_DB_NAME",
	User:            "CERTILAB_DB_USER",
	Password:        "CERTILAB_DB_PASSWORD",
	SSLMode:         "CERTILAB_DB_SSL_MODE",
	MaxOpenConns:    "CERTILAB_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CERTILAB_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CERTILAB_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CERTILAB_DB_CONN_TIMEOUT",
}

var sheetsEnv = &sheets.Env{
	SpreadsheetID: "CERTILAB_SHEETS_SPREADSHEET_ID",
	Credentials:   "CERTILAB_SHEETS_CREDENTIALS",
}

var driveEnv = &drive.Env{
	FolderID:    "CERTILAB_DRIVE_FOLDER_ID",
	Credentials: "CERTILAB_DRIVE_CREDENTIALS",
}

var renderEnv = &render.Env{
	FontPath: "CERTILAB_RENDER_FONT_PATH",
	DPI:      "CERTILAB_RENDER_DPI",
}

// Config is the root configuration for the Certilab service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Sheets          sheets.Config     `toml:"sheets"`
	Drive           drive.Config      `toml:"drive"`
	Render          render.Config     `toml:"render"`
	Certificate     CertificateConfig `toml:"certificate"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the CERTILAB_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCertilabEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Sheets.Merge(&overlay.Sheets)
	c.Drive.Merge(&overlay.Drive)
	c.Render.Merge(&overlay.Render)
	c.Certificate.Merge(&overlay.Certificate)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Sheets.Finalize(sheetsEnv); err != nil {
		return fmt.Errorf("sheets: %w", err)
	}
	if err := c.Drive.Finalize(driveEnv); err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Certificate.Finalize(); err != nil {
		return fmt.Errorf("certificate: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCertilabShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCertilabVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCertilabEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
