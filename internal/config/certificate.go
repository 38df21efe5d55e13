package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/corvalle/certilab/internal/entities"
)

const (
	EnvCertificateCity         = "CERTILAB_CERT_CITY"
	EnvCertificateSignerName   = "CERTILAB_CERT_SIGNER_NAME"
	EnvCertificateSignerTitle  = "CERTILAB_CERT_SIGNER_TITLE"
	EnvCertificateTimezone     = "CERTILAB_CERT_TIMEZONE"
	EnvCertificateManualTitles = "CERTILAB_CERT_MANUAL_SALARY_TITLES"
	EnvCertificateFuzzyEnabled = "CERTILAB_CERT_FUZZY_ENABLED"
	EnvCertificateFuzzyCutoff  = "CERTILAB_CERT_FUZZY_CUTOFF"
)

// CertificateConfig holds certificate content policy: issuing city and
// signature block, evaluation timezone, job titles that require an explicit
// salary, and alias matching behavior.
type CertificateConfig struct {
	City               string               `toml:"city"`
	SignerName         string               `toml:"signer_name"`
	SignerTitle        string               `toml:"signer_title"`
	Timezone           string               `toml:"timezone"`
	ManualSalaryTitles []string             `toml:"manual_salary_titles"`
	Fuzzy              entities.FuzzyConfig `toml:"fuzzy"`
}

// Location returns the configured timezone. Finalize validates the name, so
// lookup failures are not expected here.
func (c *CertificateConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CertificateConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. The manual titles list
// replaces wholesale when the overlay provides one.
func (c *CertificateConfig) Merge(overlay *CertificateConfig) {
	if overlay.City != "" {
		c.City = overlay.City
	}
	if overlay.SignerName != "" {
		c.SignerName = overlay.SignerName
	}
	if overlay.SignerTitle != "" {
		c.SignerTitle = overlay.SignerTitle
	}
	if overlay.Timezone != "" {
		c.Timezone = overlay.Timezone
	}
	if len(overlay.ManualSalaryTitles) > 0 {
		c.ManualSalaryTitles = overlay.ManualSalaryTitles
	}
	if overlay.Fuzzy.Enabled {
		c.Fuzzy.Enabled = true
	}
	if overlay.Fuzzy.Cutoff != 0 {
		c.Fuzzy.Cutoff = overlay.Fuzzy.Cutoff
	}
}

func (c *CertificateConfig) loadDefaults() {
	if c.City == "" {
		c.City = "Santiago de Cali"
	}
	if c.SignerTitle == "" {
		c.SignerTitle = "Coordinadora de Gestión Humana"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Bogota"
	}
	if c.Fuzzy.Cutoff == 0 {
		c.Fuzzy.Cutoff = 0.7
	}
}

func (c *CertificateConfig) loadEnv() {
	if v := os.Getenv(EnvCertificateCity); v != "" {
		c.City = v
	}
	if v := os.Getenv(EnvCertificateSignerName); v != "" {
		c.SignerName = v
	}
	if v := os.Getenv(EnvCertificateSignerTitle); v != "" {
		c.SignerTitle = v
	}
	if v := os.Getenv(EnvCertificateTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvCertificateManualTitles); v != "" {
		titles := strings.Split(v, ",")
		c.ManualSalaryTitles = c.ManualSalaryTitles[:0]
		for _, title := range titles {
			if title = strings.TrimSpace(title); title != "" {
				c.ManualSalaryTitles = append(c.ManualSalaryTitles, title)
			}
		}
	}
	if v := os.Getenv(EnvCertificateFuzzyEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Fuzzy.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCertificateFuzzyCutoff); v != "" {
		if cutoff, err := strconv.ParseFloat(v, 64); err == nil {
			c.Fuzzy.Cutoff = cutoff
		}
	}
}

func (c *CertificateConfig) validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Fuzzy.Cutoff < 0 || c.Fuzzy.Cutoff > 1 {
		return fmt.Errorf("fuzzy cutoff must be within [0, 1]: %g", c.Fuzzy.Cutoff)
	}
	return nil
}
