// Package spanish provides locale-fixed Spanish formatting for dates and
// monetary amounts. All functions are pure and deterministic; certificate
// text reproducibility depends on that.
package spanish

import (
	"fmt"
	"strings"
	"time"
)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Month returns the lowercase Spanish name for the given month.
func Month(m time.Month) string {
	return months[m-1]
}

// FormatDate renders a date in Spanish long form: "2 de enero de 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), Month(t.Month()), t.Year())
}

// FormatPesos renders an amount with Colombian thousands separators: "$1.300.000".
func FormatPesos(amount int64) string {
	digits := fmt.Sprintf("%d", amount)

	var b strings.Builder
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 1 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// AmountInWords renders a peso amount as uppercase Spanish words with the
// customary "M/CTE" (moneda corriente) suffix:
// 1300000 -> "UN MILLÓN TRESCIENTOS MIL PESOS M/CTE".
func AmountInWords(amount int64) string {
	unit := "PESOS"
	switch {
	case amount == 1:
		unit = "PESO"
	case amount >= 1_000_000 && amount%1_000_000 == 0:
		// Exact millions take the partitive: "dos millones de pesos".
		unit = "DE PESOS"
	}
	return strings.ToUpper(NumberToWords(amount)) + " " + unit + " M/CTE"
}

// NumberToWords converts a non-negative integer to lowercase Spanish words,
// using the apocopated form ("un", "veintiún") required before a noun.
func NumberToWords(n int64) string {
	if n == 0 {
		return "cero"
	}

	var parts []string

	if millions := n / 1_000_000; millions > 0 {
		if millions == 1 {
			parts = append(parts, "un millón")
		} else {
			parts = append(parts, belowMillion(millions)+" millones")
		}
		n %= 1_000_000
	}

	if n > 0 {
		parts = append(parts, belowMillion(n))
	}

	return strings.Join(parts, " ")
}

func belowMillion(n int64) string {
	var parts []string

	if thousands := n / 1000; thousands > 0 {
		if thousands == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, belowThousand(thousands)+" mil")
		}
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, belowThousand(n))
	}

	return strings.Join(parts, " ")
}

var hundredNames = [...]string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

func belowThousand(n int64) string {
	if n == 100 {
		return "cien"
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundredNames[h])
	}
	if r := n % 100; r > 0 {
		parts = append(parts, belowHundred(r))
	}
	return strings.Join(parts, " ")
}

var smallNames = [...]string{
	"", "un", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho",
	"nueve", "diez", "once", "doce", "trece", "catorce", "quince",
	"dieciséis", "diecisiete", "dieciocho", "diecinueve", "veinte",
	"veintiún", "veintidós", "veintitrés", "veinticuatro", "veinticinco",
	"veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var tenNames = [...]string{
	"", "", "", "treinta", "cuarenta", "cincuenta",
	"sesenta", "setenta", "ochenta", "noventa",
}

func belowHundred(n int64) string {
	if n < 30 {
		return smallNames[n]
	}
	if n%10 == 0 {
		return tenNames[n/10]
	}
	return tenNames[n/10] + " y " + smallNames[n%10]
}
