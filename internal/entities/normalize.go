package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Abbreviations that appear throughout historical contract rows.
var abbreviations = map[string]string{
	"UT":   "UNION TEMPORAL",
	"U.T.": "UNION TEMPORAL",
	"U.T":  "UNION TEMPORAL",
	"CS":   "CONSORCIO",
	"C.S.": "CONSORCIO",
}

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize canonicalizes a raw company name for matching: accents removed,
// uppercased, whitespace collapsed, and common abbreviations expanded.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	flat, _, err := transform.String(stripAccents, name)
	if err != nil {
		flat = name
	}

	fields := strings.Fields(strings.ToUpper(flat))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if expanded, ok := abbreviations[f]; ok {
			out = append(out, strings.Fields(expanded)...)
			continue
		}
		out = append(out, f)
	}

	return strings.Join(out, " ")
}

// yearOf extracts a 4-digit year token (1900-2099) from a normalized name.
// Returns "" when the name carries no year.
func yearOf(normalized string) string {
	for _, f := range strings.Fields(normalized) {
		if len(f) != 4 {
			continue
		}
		if !strings.HasPrefix(f, "19") && !strings.HasPrefix(f, "20") {
			continue
		}
		if isDigits(f) {
			return f
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
