package certificates

import (
	"errors"
	"net/http"

	"github.com/corvalle/certilab/internal/contracts"
)

// Domain errors for certificate operations.
var (
	// ErrMissingSalary indicates a job title that requires a manually
	// supplied salary and none was provided. Raised before any rendering.
	ErrMissingSalary = errors.New("salary must be supplied for this job title")
	// ErrInvalidIdentity indicates a blank or malformed identity number.
	ErrInvalidIdentity = errors.New("invalid identity number")
	// ErrDuplicateRun indicates a run row colliding with an existing id.
	ErrDuplicateRun = errors.New("duplicate certificate run")
)

// MapHTTPStatus maps certificate domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, contracts.ErrNoRecords) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingSalary) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrInvalidIdentity) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
