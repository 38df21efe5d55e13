package registry_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/corvalle/certilab/internal/registry"
	"github.com/corvalle/certilab/pkg/lifecycle"
)

// fakeSheets serves canned worksheet rows.
type fakeSheets struct {
	worksheets map[string][][]string
	err        error
}

func (f *fakeSheets) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeSheets) ReadRows(ctx context.Context, worksheet string) ([][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.worksheets[worksheet], nil
}

func newRegistry(t *testing.T, sheets *fakeSheets) registry.System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return registry.New(sheets, logger, time.UTC)
}

var contractHeader = []string{
	"cedula", "nombre_completo", "empresa", "cargo", "fecha_inicio", "fecha_fin", "salario",
}

func TestFetchRecords(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{
		registry.ContractsWorksheet: {
			contractHeader,
			{"1144099001", "María López", "UT Alianza 2019", "Docente", "2023-02-01", "2023-12-31", "$1.300.000"},
			{"1144099002", "Pedro Gómez", "UT Alianza 2019", "Auxiliar", "2023-02-01", "", ""},
			{"1144099001", "María López", "Consorcio Progreso", "Docente", "15/01/2024", "", "1500000"},
		},
	}}

	records, err := newRegistry(t, sheets).FetchRecords(context.Background(), "1144099001")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	first := records[0]
	if first.EmployeeName != "María López" {
		t.Errorf("EmployeeName = %q", first.EmployeeName)
	}
	if !first.Start.Equal(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", first.Start)
	}
	if first.End == nil || !first.End.Equal(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", first.End)
	}
	if first.Salary == nil || *first.Salary != 1300000 {
		t.Errorf("Salary = %v, want 1300000", first.Salary)
	}

	second := records[1]
	if !second.Start.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("slash date Start = %v", second.Start)
	}
	if second.End != nil {
		t.Errorf("End = %v, want nil for open-ended contract", second.End)
	}
	if second.Salary == nil || *second.Salary != 1500000 {
		t.Errorf("Salary = %v, want 1500000", second.Salary)
	}
}

func TestFetchRecordsNoMatches(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{
		registry.ContractsWorksheet: {
			contractHeader,
			{"1144099001", "María López", "UT Alianza 2019", "Docente", "2023-02-01", "", ""},
		},
	}}

	records, err := newRegistry(t, sheets).FetchRecords(context.Background(), "999")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestFetchRecordsSkipsMalformedRows(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{
		registry.ContractsWorksheet: {
			contractHeader,
			{"1144099001", "María López", "UT Alianza 2019", "Docente", "not-a-date", "", ""},
			{"1144099001", "María López", "UT Alianza 2019", "Docente", "", "", ""},
			{"1144099001", "María López", "UT Alianza 2019", "Docente", "2023-02-01", "", ""},
		},
	}}

	records, err := newRegistry(t, sheets).FetchRecords(context.Background(), "1144099001")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 after skipping malformed rows", len(records))
	}
}

func TestFetchRecordsMissingColumn(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{
		registry.ContractsWorksheet: {
			{"cedula", "empresa", "cargo"},
		},
	}}

	_, err := newRegistry(t, sheets).FetchRecords(context.Background(), "1144099001")
	if !errors.Is(err, registry.ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestAliasTable(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{
		registry.CompaniesWorksheet: {
			{"Empresa", "Nit"},
			{"Unión Temporal Alianza 2019, UT Alianza 2019, Alianza 2019", "901111111-1"},
			{"Consorcio Progreso", "900333333-3"},
			{"", "900444444-4"},
			{"Sin NIT", ""},
		},
	}}

	table, err := newRegistry(t, sheets).AliasTable(context.Background())
	if err != nil {
		t.Fatalf("alias table failed: %v", err)
	}

	if len(table) != 4 {
		t.Fatalf("aliases = %d, want 4", len(table))
	}

	// Every alias maps to the canonical first entry.
	for _, alias := range []string{"Unión Temporal Alianza 2019", "UT Alianza 2019", "Alianza 2019"} {
		entity, ok := table[alias]
		if !ok {
			t.Fatalf("alias %q missing", alias)
		}
		if entity.Name != "Unión Temporal Alianza 2019" || entity.NIT != "901111111-1" {
			t.Errorf("alias %q resolves to %+v", alias, entity)
		}
	}

	if _, ok := table["Sin NIT"]; ok {
		t.Error("row without NIT must be skipped")
	}
}

func TestAliasTableEmptySheet(t *testing.T) {
	sheets := &fakeSheets{worksheets: map[string][][]string{}}

	table, err := newRegistry(t, sheets).AliasTable(context.Background())
	if err != nil {
		t.Fatalf("alias table failed: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("aliases = %d, want 0", len(table))
	}
}
