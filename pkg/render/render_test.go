package render_test

import (
	"bytes"
	"testing"

	"github.com/corvalle/certilab/pkg/render"
)

func testPage() render.Page {
	return render.Page{
		Header: []string{"UNIÓN TEMPORAL ALIANZA 2019", "NIT 901111111-1"},
		Title:  "CERTIFICACIÓN LABORAL",
		Body: []string{
			"HACE CONSTAR:",
			"Que el(la) señor(a) María Fernanda López, identificado(a) con cédula de " +
				"ciudadanía No. 1144099001, labora en UNIÓN TEMPORAL ALIANZA 2019, NIT " +
				"901111111-1, desempeñando el cargo de DOCENTE, desde el 1 de febrero de " +
				"2023 hasta la fecha.",
		},
		Closing:   []string{"Se expide en Santiago de Cali, a los 15 días del mes de marzo de 2026."},
		Signature: []string{"Ana Pérez", "Coordinadora de Gestión Humana"},
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := render.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.DPI != 150 {
		t.Errorf("DPI = %d, want 150", cfg.DPI)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	cfg := render.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	r, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer init failed: %v", err)
	}

	pdf, err := r.Render(testPage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("output lacks PDF header, got %q", pdf[:min(8, len(pdf))])
	}
}

func TestRenderDeterministicSize(t *testing.T) {
	cfg := render.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	r, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer init failed: %v", err)
	}

	first, err := r.Render(testPage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := r.Render(testPage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// The raster stage is fully deterministic; only PDF metadata may vary.
	if len(first) == 0 || len(second) == 0 {
		t.Fatal("empty render output")
	}
}

func TestNewMissingFont(t *testing.T) {
	cfg := render.Config{FontPath: "testdata/missing.ttf", DPI: 150}
	if _, err := render.New(&cfg); err == nil {
		t.Fatal("expected error for missing font file")
	}
}
