package certificates_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/corvalle/certilab/internal/certificates"
	"github.com/corvalle/certilab/internal/contracts"
	"github.com/corvalle/certilab/internal/entities"
)

var alianza = entities.Entity{NIT: "901111111-1", Name: "Unión Temporal Alianza 2019"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func salary(v int64) *int64 { return &v }

func record(title string, start time.Time, end *time.Time, pay *int64) contracts.Record {
	return contracts.Record{
		IdentityNumber: "1144099001",
		EmployeeName:   "María Fernanda López",
		Company:        "UT Alianza 2019",
		Title:          title,
		Start:          start,
		End:            end,
		Salary:         pay,
	}
}

func group(active bool, latestEnd *time.Time, pay *int64, records ...contracts.Record) contracts.Group {
	return contracts.Group{
		Entity:        alianza,
		Records:       records,
		Active:        active,
		LatestTitle:   records[len(records)-1].Title,
		EarliestStart: records[0].Start,
		LatestEnd:     latestEnd,
		Salary:        pay,
	}
}

func testContext() certificates.Context {
	return certificates.NewContext(
		date(2026, 3, 15),
		"Santiago de Cali",
		[]string{"Coordinador General"},
	)
}

func TestBuildPayloadActiveContract(t *testing.T) {
	g := group(true, nil, nil, record("Docente", date(2023, 2, 1), nil, nil))

	p, err := certificates.BuildPayload(g, nil, testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	wantNarrative := "Que el(la) señor(a) María Fernanda López, identificado(a) con " +
		"cédula de ciudadanía No. 1144099001, labora en UNIÓN TEMPORAL ALIANZA 2019, " +
		"NIT 901111111-1, desempeñando el cargo de DOCENTE, desde el 1 de febrero de 2023 " +
		"hasta la fecha."
	if p.Narrative != wantNarrative {
		t.Errorf("narrative:\n got: %s\nwant: %s", p.Narrative, wantNarrative)
	}

	wantIssued := "Se expide en Santiago de Cali, a los 15 días del mes de marzo de 2026."
	if p.Issued != wantIssued {
		t.Errorf("issued:\n got: %s\nwant: %s", p.Issued, wantIssued)
	}

	if p.Filename != "Certificado_Laboral_Unión_Temporal_Alianza_2019_1144099001.pdf" {
		t.Errorf("filename = %q", p.Filename)
	}
	if !p.Active {
		t.Error("Active = false, want true")
	}
}

func TestBuildPayloadEndedContract(t *testing.T) {
	end := datePtr(2024, 11, 30)
	g := group(false, end, nil, record("Docente", date(2023, 2, 1), end, nil))

	p, err := certificates.BuildPayload(g, nil, testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !strings.Contains(p.Narrative, "laboró en") {
		t.Errorf("narrative lacks past tense: %s", p.Narrative)
	}
	if !strings.Contains(p.Narrative, "hasta el 30 de noviembre de 2024.") {
		t.Errorf("narrative lacks end date: %s", p.Narrative)
	}
}

func TestBuildPayloadSalaryClause(t *testing.T) {
	g := group(true, nil, salary(1300000), record("Docente", date(2023, 2, 1), nil, salary(1300000)))

	p, err := certificates.BuildPayload(g, nil, testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	want := ", con una asignación mensual de UN MILLÓN TRESCIENTOS MIL PESOS M/CTE ($1.300.000)."
	if !strings.HasSuffix(p.Narrative, want) {
		t.Errorf("narrative lacks salary clause:\n got: %s\nwant suffix: %s", p.Narrative, want)
	}
}

func TestBuildPayloadNoSalaryOmitsClause(t *testing.T) {
	g := group(true, nil, nil, record("Docente", date(2023, 2, 1), nil, nil))

	p, err := certificates.BuildPayload(g, nil, testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if strings.Contains(p.Narrative, "asignación mensual") {
		t.Errorf("narrative carries salary clause without a salary: %s", p.Narrative)
	}
}

func TestBuildPayloadOverrideWins(t *testing.T) {
	g := group(true, nil, salary(1300000), record("Docente", date(2023, 2, 1), nil, salary(1300000)))

	p, err := certificates.BuildPayload(g, salary(2000000), testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !strings.Contains(p.Narrative, "($2.000.000)") {
		t.Errorf("override not applied: %s", p.Narrative)
	}
}

func TestBuildPayloadManualSalaryRequired(t *testing.T) {
	g := group(true, nil, nil, record("Coordinador General", date(2023, 2, 1), nil, nil))

	_, err := certificates.BuildPayload(g, nil, testContext())
	if !errors.Is(err, certificates.ErrMissingSalary) {
		t.Fatalf("err = %v, want ErrMissingSalary", err)
	}

	// An override satisfies the requirement.
	if _, err := certificates.BuildPayload(g, salary(3500000), testContext()); err != nil {
		t.Fatalf("build with override failed: %v", err)
	}
}

func TestBuildPayloadManualSalaryIgnoredWhenInactive(t *testing.T) {
	end := datePtr(2024, 11, 30)
	g := group(false, end, nil, record("Coordinador General", date(2023, 2, 1), end, nil))

	if _, err := certificates.BuildPayload(g, nil, testContext()); err != nil {
		t.Fatalf("inactive group must not require a salary: %v", err)
	}
}

func TestBuildPayloadDeterministic(t *testing.T) {
	g := group(true, nil, salary(1300000), record("Docente", date(2023, 2, 1), nil, salary(1300000)))

	first, err := certificates.BuildPayload(g, nil, testContext())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for range 5 {
		next, err := certificates.BuildPayload(g, nil, testContext())
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if next != first {
			t.Fatalf("payload differs across runs:\n%+v\n%+v", next, first)
		}
	}
}
