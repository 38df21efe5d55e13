package spanish_test

import (
	"testing"
	"time"

	"github.com/corvalle/certilab/pkg/spanish"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"single digit day", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "2 de enero de 2026"},
		{"double digit day", time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC), "30 de noviembre de 2024"},
		{"accented month", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "1 de febrero de 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spanish.FormatDate(tt.date); got != tt.want {
				t.Errorf("FormatDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPesos(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1.000"},
		{1300000, "$1.300.000"},
		{123456789, "$123.456.789"},
	}

	for _, tt := range tests {
		if got := spanish.FormatPesos(tt.amount); got != tt.want {
			t.Errorf("FormatPesos(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "cero"},
		{1, "un"},
		{16, "dieciséis"},
		{21, "veintiún"},
		{30, "treinta"},
		{47, "cuarenta y siete"},
		{100, "cien"},
		{101, "ciento un"},
		{555, "quinientos cincuenta y cinco"},
		{1000, "mil"},
		{1500, "mil quinientos"},
		{21000, "veintiún mil"},
		{100000, "cien mil"},
		{1000000, "un millón"},
		{1300000, "un millón trescientos mil"},
		{2450300, "dos millones cuatrocientos cincuenta mil trescientos"},
	}

	for _, tt := range tests {
		if got := spanish.NumberToWords(tt.n); got != tt.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{1, "UN PESO M/CTE"},
		{1300000, "UN MILLÓN TRESCIENTOS MIL PESOS M/CTE"},
		{1000000, "UN MILLÓN DE PESOS M/CTE"},
		{2000000, "DOS MILLONES DE PESOS M/CTE"},
	}

	for _, tt := range tests {
		if got := spanish.AmountInWords(tt.amount); got != tt.want {
			t.Errorf("AmountInWords(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
