package pagination_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/corvalle/certilab/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "50")
	t.Setenv("TEST_MAX_PAGE", "200")

	env := &pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGE_SIZE",
		MaxPageSize:     "TEST_MAX_PAGE",
	}

	cfg := pagination.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 200 {
		t.Errorf("MaxPageSize = %d, want 200", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}

	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "default_page_size cannot exceed max_page_size") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		req      pagination.PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"size over max", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid passthrough", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{"page": {"2"}, "page_size": {"40"}}
	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 || req.PageSize != 40 {
		t.Errorf("req = %+v, want page 2 size 40", req)
	}

	req = pagination.PageRequestFromQuery(url.Values{}, defaultConfig())
	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("req = %+v, want defaults", req)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		wantPages int
	}{
		{"exact division", 100, 5},
		{"remainder rounds up", 101, 6},
		{"empty result is one page", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, 20)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data must serialize as an empty array, not null")
	}
}
