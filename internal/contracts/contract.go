// Package contracts aggregates raw employment records into per-entity
// contract groups with derived certificate facts.
package contracts

import (
	"time"

	"github.com/corvalle/certilab/internal/entities"
)

// Record is one employment history row as read from the contract sheet.
// Records are immutable once read; they are fetched per request and never
// persisted by this service.
type Record struct {
	IdentityNumber string     `json:"identity_number"`
	EmployeeName   string     `json:"employee_name"`
	Company        string     `json:"company"`
	Title          string     `json:"title"`
	Start          time.Time  `json:"start"`
	End            *time.Time `json:"end,omitempty"`
	Salary         *int64     `json:"salary,omitempty"`
}

// Group holds all of one employee's records for a single legal entity,
// in chronological order, with the facts a certificate needs.
type Group struct {
	Entity  entities.Entity `json:"entity"`
	Records []Record        `json:"records"`

	// Active reports whether the chronologically last record is open-ended
	// or ends on/after the evaluation date.
	Active bool `json:"active"`
	// LatestTitle is the job title of the chronologically last record.
	LatestTitle string `json:"latest_title"`
	// EarliestStart is the start date of the first record.
	EarliestStart time.Time `json:"earliest_start"`
	// LatestEnd is nil while the last record is open-ended; otherwise the
	// latest end date across the group.
	LatestEnd *time.Time `json:"latest_end,omitempty"`
	// Salary is the most recent tracked salary in the group, if any.
	Salary *int64 `json:"salary,omitempty"`
}

// Aggregation is the outcome of partitioning one employee's records.
// Unresolved holds records whose company name matched no known alias;
// they are reported, never silently dropped.
type Aggregation struct {
	Groups     []Group  `json:"groups"`
	Unresolved []Record `json:"unresolved,omitempty"`
}

// UnresolvedCompanies lists the distinct raw company names that failed
// alias resolution, in record order.
func (a Aggregation) UnresolvedCompanies() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(a.Unresolved))
	for _, rec := range a.Unresolved {
		if !seen[rec.Company] {
			seen[rec.Company] = true
			names = append(names, rec.Company)
		}
	}
	return names
}
