// Package registry reads employment records and company reference data
// from the organization's contract spreadsheet.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corvalle/certilab/internal/contracts"
	"github.com/corvalle/certilab/internal/entities"
	"github.com/corvalle/certilab/pkg/sheets"
)

// Worksheet names in the contract spreadsheet.
const (
	ContractsWorksheet = "bd_contratacion"
	CompaniesWorksheet = "Empresas"
)

// Contract sheet column headers.
const (
	colIdentity = "cedula"
	colName     = "nombre_completo"
	colCompany  = "empresa"
	colTitle    = "cargo"
	colStart    = "fecha_inicio"
	colEnd      = "fecha_fin"
	colSalary   = "salario"
)

// Company sheet column headers. The Empresa cell holds a comma-separated
// alias list whose first entry is the canonical name.
const (
	colEmpresa = "Empresa"
	colNit     = "Nit"
)

// ErrMissingColumn indicates a worksheet header row lacks a required column.
var ErrMissingColumn = errors.New("worksheet missing required column")

// System provides employment records and the company alias table.
type System interface {
	// FetchRecords returns all contract rows for the given identity number,
	// in sheet order. The result may be empty.
	FetchRecords(ctx context.Context, identityNumber string) ([]contracts.Record, error)
	// AliasTable loads the company reference data as an alias lookup table.
	AliasTable(ctx context.Context) (entities.Table, error)
}

type system struct {
	sheets   sheets.System
	logger   *slog.Logger
	location *time.Location
}

// New creates a registry backed by the given sheets system.
// Dates in the contract sheet are interpreted in the given location.
func New(sh sheets.System, logger *slog.Logger, location *time.Location) System {
	return &system{
		sheets:   sh,
		logger:   logger.With("system", "registry"),
		location: location,
	}
}

func (s *system) FetchRecords(ctx context.Context, identityNumber string) ([]contracts.Record, error) {
	rows, err := s.sheets.ReadRows(ctx, ContractsWorksheet)
	if err != nil {
		return nil, fmt.Errorf("fetch contract rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := headerIndex(rows[0], colIdentity, colName, colCompany, colTitle, colStart, colEnd, colSalary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ContractsWorksheet, err)
	}

	want := strings.TrimSpace(identityNumber)
	records := make([]contracts.Record, 0)

	for i, row := range rows[1:] {
		if strings.TrimSpace(cell(row, cols[colIdentity])) != want {
			continue
		}

		rec, err := s.parseRecord(row, cols)
		if err != nil {
			s.logger.Warn("skipping malformed contract row", "row", i+2, "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *system) parseRecord(row []string, cols map[string]int) (contracts.Record, error) {
	start, err := s.parseDate(cell(row, cols[colStart]))
	if err != nil {
		return contracts.Record{}, fmt.Errorf("fecha_inicio: %w", err)
	}
	if start == nil {
		return contracts.Record{}, fmt.Errorf("fecha_inicio empty")
	}

	end, err := s.parseDate(cell(row, cols[colEnd]))
	if err != nil {
		return contracts.Record{}, fmt.Errorf("fecha_fin: %w", err)
	}

	return contracts.Record{
		IdentityNumber: strings.TrimSpace(cell(row, cols[colIdentity])),
		EmployeeName:   strings.TrimSpace(cell(row, cols[colName])),
		Company:        strings.TrimSpace(cell(row, cols[colCompany])),
		Title:          strings.TrimSpace(cell(row, cols[colTitle])),
		Start:          *start,
		End:            end,
		Salary:         parseSalary(cell(row, cols[colSalary])),
	}, nil
}

func (s *system) AliasTable(ctx context.Context) (entities.Table, error) {
	rows, err := s.sheets.ReadRows(ctx, CompaniesWorksheet)
	if err != nil {
		return nil, fmt.Errorf("fetch company rows: %w", err)
	}
	if len(rows) == 0 {
		return entities.Table{}, nil
	}

	cols, err := headerIndex(rows[0], colEmpresa, colNit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CompaniesWorksheet, err)
	}

	table := make(entities.Table)
	for _, row := range rows[1:] {
		aliases, nit := cell(row, cols[colEmpresa]), strings.TrimSpace(cell(row, cols[colNit]))
		if aliases == "" || nit == "" {
			continue
		}

		names := splitAliases(aliases)
		if len(names) == 0 {
			continue
		}

		entity := entities.Entity{NIT: nit, Name: names[0]}
		for _, alias := range names {
			table[alias] = entity
		}
	}

	return table, nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// parseDate accepts the date formats found across years of sheet entries.
// An empty cell yields nil, which marks an open-ended contract for fecha_fin.
func (s *system) parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, s.location); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unrecognized date %q", value)
}

// parseSalary reads a Colombian-formatted amount ("$1.300.000", "1300000").
// Cells without any digits yield nil.
func parseSalary(value string) *int64 {
	var amount int64
	seen := false

	for _, r := range value {
		if r >= '0' && r <= '9' {
			amount = amount*10 + int64(r-'0')
			seen = true
		}
	}

	if !seen {
		return nil
	}
	return &amount
}

func splitAliases(value string) []string {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
