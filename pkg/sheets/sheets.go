// Package sheets provides read access to Google Sheets worksheets with
// lifecycle coordination.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"

	"github.com/corvalle/certilab/pkg/google"
	"github.com/corvalle/certilab/pkg/lifecycle"
)

// System manages spreadsheet reads and lifecycle coordination.
type System interface {
	// Start registers a startup hook that verifies spreadsheet access.
	Start(lc *lifecycle.Coordinator) error
	// ReadRows returns all rows of the named worksheet as strings.
	// The first row is the header row; empty trailing cells are preserved
	// as empty strings up to the header width.
	ReadRows(ctx context.Context, worksheet string) ([][]string, error)
}

type system struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// New creates a sheets system from the given configuration.
// Credentials are validated lazily; call Start to verify access.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	opts := google.CredentialOptions(cfg.Credentials, sheets.SpreadsheetsReadonlyScope)

	svc, err := sheets.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &system{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger.With("system", "sheets"),
	}, nil
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting sheets system")

	lc.OnStartup(func() {
		_, err := s.svc.Spreadsheets.
			Get(s.spreadsheetID).
			Fields("spreadsheetId").
			Context(lc.Context()).
			Do()
		if err != nil {
			s.logger.Error("spreadsheet access check failed", "error", err)
			return
		}

		s.logger.Info("spreadsheet reachable", "spreadsheet", s.spreadsheetID)
	})

	return nil
}

func (s *system) ReadRows(ctx context.Context, worksheet string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, worksheet).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", worksheet, google.MapError(err))
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	width := len(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, width)
		for i := 0; i < width && i < len(raw); i++ {
			row[i] = fmt.Sprint(raw[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
