// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, spreadsheet, and Drive
// access) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/corvalle/certilab/internal/config"
	"github.com/corvalle/certilab/pkg/database"
	"github.com/corvalle/certilab/pkg/drive"
	"github.com/corvalle/certilab/pkg/lifecycle"
	"github.com/corvalle/certilab/pkg/sheets"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and the Google Workspace clients.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Sheets    sheets.System
	Drive     drive.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	sh, err := sheets.New(&cfg.Sheets, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets init failed: %w", err)
	}

	dr, err := drive.New(&cfg.Drive, logger)
	if err != nil {
		return nil, fmt.Errorf("drive init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Sheets:    sh,
		Drive:     dr,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Each system contributes startup and shutdown hooks.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Sheets.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("sheets start failed: %w", err)
	}
	if err := i.Drive.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("drive start failed: %w", err)
	}
	return nil
}
