// Package certificates implements the labor-certificate domain: building
// certificate content from aggregated contract groups, rendering and
// uploading one document per legal entity, and recording generation runs.
package certificates

import (
	"time"

	"github.com/google/uuid"

	"github.com/corvalle/certilab/internal/entities"
	"github.com/corvalle/certilab/pkg/drive"
)

// Payload is the render-ready content for one legal entity's certificate.
// It is consumed by the renderer and discarded; only the resulting PDF
// persists.
type Payload struct {
	Entity         entities.Entity `json:"entity"`
	EmployeeName   string          `json:"employee_name"`
	IdentityNumber string          `json:"identity_number"`
	LatestTitle    string          `json:"latest_title"`
	Active         bool            `json:"active"`
	// Narrative is the full certificate sentence, Spanish locale, with the
	// salary clause already included or omitted.
	Narrative string `json:"narrative"`
	// Issued is the expedition line for the evaluation date.
	Issued   string `json:"issued"`
	Filename string `json:"filename"`
}

// GenerateCommand carries one certificate request.
type GenerateCommand struct {
	IdentityNumber string `json:"identity_number"`
	// SalaryOverride supplies the monthly salary for job titles whose pay
	// is not tracked in the contract sheet.
	SalaryOverride *int64 `json:"salary_override,omitempty"`
}

// EntityResult reports one generated certificate.
type EntityResult struct {
	Entity      entities.Entity `json:"entity"`
	LatestTitle string          `json:"latest_title"`
	Active      bool            `json:"active"`
	Filename    string          `json:"filename"`
	File        *drive.FileRef  `json:"file"`
}

// GenerateResult reports the outcome of one pipeline execution. Certificates
// holds one entry per resolved entity; Unresolved lists company names that
// matched no alias and need operator attention.
type GenerateResult struct {
	IdentityNumber string         `json:"identity_number"`
	EmployeeName   string         `json:"employee_name"`
	Certificates   []EntityResult `json:"certificates"`
	Unresolved     []string       `json:"unresolved,omitempty"`
}

// EntitySummary is the verification view of one contract group.
type EntitySummary struct {
	Entity        entities.Entity `json:"entity"`
	LatestTitle   string          `json:"latest_title"`
	Active        bool            `json:"active"`
	EarliestStart time.Time       `json:"earliest_start"`
	LatestEnd     *time.Time      `json:"latest_end,omitempty"`
	// RequiresSalary reports whether generating this certificate needs a
	// manually supplied salary.
	RequiresSalary bool `json:"requires_salary"`
}

// VerifyResult summarizes an employee's contract groups without rendering.
type VerifyResult struct {
	IdentityNumber string          `json:"identity_number"`
	EmployeeName   string          `json:"employee_name"`
	Entities       []EntitySummary `json:"entities"`
	Unresolved     []string        `json:"unresolved,omitempty"`
}

// Run is one recorded certificate generation, persisted for the
// recent-activity view.
type Run struct {
	ID             uuid.UUID `json:"id"`
	IdentityNumber string    `json:"identity_number"`
	EmployeeName   string    `json:"employee_name"`
	EntityNIT      string    `json:"entity_nit"`
	EntityName     string    `json:"entity_name"`
	Filename       string    `json:"filename"`
	DriveFileID    string    `json:"drive_file_id"`
	WebViewLink    string    `json:"web_view_link"`
	Active         bool      `json:"active"`
	GeneratedAt    time.Time `json:"generated_at"`
}
