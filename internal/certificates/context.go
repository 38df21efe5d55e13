package certificates

import (
	"strings"
	"time"
)

// Context carries the shared formatting inputs for payload building: the
// evaluation date (fixed per request for reproducibility), the expedition
// city, and the set of job titles whose salary must be supplied manually.
type Context struct {
	EvalDate time.Time
	City     string

	manualTitles map[string]bool
}

// NewContext builds a Context. Title membership is case- and
// whitespace-insensitive.
func NewContext(evalDate time.Time, city string, manualSalaryTitles []string) Context {
	titles := make(map[string]bool, len(manualSalaryTitles))
	for _, t := range manualSalaryTitles {
		titles[canonicalTitle(t)] = true
	}

	return Context{
		EvalDate:     evalDate,
		City:         city,
		manualTitles: titles,
	}
}

// RequiresManualSalary reports whether the given job title belongs to the
// configured manual-salary set.
func (c Context) RequiresManualSalary(title string) bool {
	return c.manualTitles[canonicalTitle(title)]
}

func canonicalTitle(title string) string {
	return strings.ToUpper(strings.Join(strings.Fields(title), " "))
}
