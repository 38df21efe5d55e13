package certificates

import (
	"context"

	"github.com/corvalle/certilab/pkg/pagination"
)

// System defines the public contract for certificate domain operations.
type System interface {
	Handler() *Handler

	// Generate runs the full pipeline for one identity number: lookup,
	// alias resolution, aggregation, content building, rendering, and
	// upload, recording each produced certificate.
	Generate(ctx context.Context, cmd GenerateCommand) (*GenerateResult, error)

	// Verify summarizes an employee's contract groups without rendering.
	Verify(ctx context.Context, identityNumber string) (*VerifyResult, error)

	// Runs lists recorded generation runs, newest first.
	Runs(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Run], error)
}
