package certificates

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/corvalle/certilab/internal/contracts"
	"github.com/corvalle/certilab/internal/entities"
	"github.com/corvalle/certilab/internal/registry"
	"github.com/corvalle/certilab/pkg/drive"
	"github.com/corvalle/certilab/pkg/pagination"
	"github.com/corvalle/certilab/pkg/render"
	"github.com/corvalle/certilab/pkg/repository"
)

// maxConcurrentRenders bounds the per-request render/upload fan-out.
const maxConcurrentRenders = 3

// Options carries the certificate policy configuration.
type Options struct {
	City               string
	SignerName         string
	SignerTitle        string
	Location           *time.Location
	ManualSalaryTitles []string
	Fuzzy              entities.FuzzyConfig
}

type service struct {
	db         *sql.DB
	registry   registry.System
	renderer   render.Renderer
	store      drive.System
	logger     *slog.Logger
	pagination pagination.Config
	opts       Options
}

// New creates the certificate system.
func New(
	db *sql.DB,
	reg registry.System,
	renderer render.Renderer,
	store drive.System,
	logger *slog.Logger,
	pagination pagination.Config,
	opts Options,
) System {
	return &service{
		db:         db,
		registry:   reg,
		renderer:   renderer,
		store:      store,
		logger:     logger.With("system", "certificates"),
		pagination: pagination,
		opts:       opts,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *service) Generate(ctx context.Context, cmd GenerateCommand) (*GenerateResult, error) {
	identity := strings.TrimSpace(cmd.IdentityNumber)
	if identity == "" {
		return nil, ErrInvalidIdentity
	}

	evalDate := s.today()
	agg, err := s.aggregate(ctx, identity, evalDate)
	if err != nil {
		return nil, err
	}

	fctx := NewContext(evalDate, s.opts.City, s.opts.ManualSalaryTitles)

	// Payloads build completely before any render or upload, so a salary
	// requirement fails the request with no side effects.
	payloads := make([]Payload, 0, len(agg.Groups))
	for _, group := range agg.Groups {
		payload, err := BuildPayload(group, cmd.SalaryOverride, fctx)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}

	result := &GenerateResult{
		IdentityNumber: identity,
		Certificates:   make([]EntityResult, len(payloads)),
		Unresolved:     agg.UnresolvedCompanies(),
	}

	if len(payloads) == 0 {
		return result, nil
	}
	result.EmployeeName = payloads[0].EmployeeName

	folderID, err := s.store.EnsurePersonFolder(ctx, result.EmployeeName, identity)
	if err != nil {
		return nil, fmt.Errorf("prepare drive folder: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)

	for i, payload := range payloads {
		g.Go(func() error {
			ref, err := s.produce(gctx, folderID, payload)
			if err != nil {
				return err
			}

			result.Certificates[i] = EntityResult{
				Entity:      payload.Entity,
				LatestTitle: payload.LatestTitle,
				Active:      payload.Active,
				Filename:    payload.Filename,
				File:        ref,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info(
		"certificates generated",
		"identity", identity,
		"count", len(payloads),
		"unresolved", len(result.Unresolved),
	)
	return result, nil
}

// produce renders one certificate and uploads it. The upload only happens
// after rendering fully succeeds, so no partial document reaches Drive.
func (s *service) produce(ctx context.Context, folderID string, payload Payload) (*drive.FileRef, error) {
	pdf, err := s.renderer.Render(s.page(payload))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", payload.Filename, err)
	}

	ref, err := s.store.Upload(ctx, folderID, payload.Filename, "application/pdf", bytes.NewReader(pdf))
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", payload.Filename, err)
	}

	if _, err := s.insertRun(ctx, payload, ref); err != nil {
		// The certificate is already delivered; a history gap is not
		// worth failing the request over.
		s.logger.Warn("run history insert failed", "filename", payload.Filename, "error", err)
	}

	return ref, nil
}

func (s *service) Verify(ctx context.Context, identityNumber string) (*VerifyResult, error) {
	identity := strings.TrimSpace(identityNumber)
	if identity == "" {
		return nil, ErrInvalidIdentity
	}

	evalDate := s.today()
	agg, err := s.aggregate(ctx, identity, evalDate)
	if err != nil {
		return nil, err
	}

	fctx := NewContext(evalDate, s.opts.City, s.opts.ManualSalaryTitles)

	result := &VerifyResult{
		IdentityNumber: identity,
		Entities:       make([]EntitySummary, 0, len(agg.Groups)),
		Unresolved:     agg.UnresolvedCompanies(),
	}

	for _, group := range agg.Groups {
		result.EmployeeName = employeeName(group)
		result.Entities = append(result.Entities, EntitySummary{
			Entity:         group.Entity,
			LatestTitle:    group.LatestTitle,
			Active:         group.Active,
			EarliestStart:  group.EarliestStart,
			LatestEnd:      group.LatestEnd,
			RequiresSalary: group.Active && fctx.RequiresManualSalary(group.LatestTitle),
		})
	}

	return result, nil
}

// aggregate runs the pure pipeline prefix: fetch records, load the alias
// table, resolve, and partition.
func (s *service) aggregate(ctx context.Context, identity string, evalDate time.Time) (contracts.Aggregation, error) {
	records, err := s.registry.FetchRecords(ctx, identity)
	if err != nil {
		return contracts.Aggregation{}, fmt.Errorf("lookup records: %w", err)
	}

	table, err := s.registry.AliasTable(ctx)
	if err != nil {
		return contracts.Aggregation{}, fmt.Errorf("load alias table: %w", err)
	}

	resolver := entities.NewResolver(table, s.opts.Fuzzy)
	return contracts.Aggregate(records, resolver, evalDate)
}

// today returns the evaluation date: midnight in the configured timezone.
func (s *service) today() time.Time {
	now := time.Now().In(s.opts.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.opts.Location)
}

func (s *service) page(p Payload) render.Page {
	return render.Page{
		Header: []string{
			strings.ToUpper(p.Entity.Name),
			"NIT " + p.Entity.NIT,
		},
		Title: "CERTIFICACIÓN LABORAL",
		Body: []string{
			"HACE CONSTAR:",
			p.Narrative,
		},
		Closing: []string{p.Issued},
		Signature: []string{
			s.opts.SignerName,
			s.opts.SignerTitle,
		},
	}
}

func (s *service) insertRun(ctx context.Context, payload Payload, ref *drive.FileRef) (*Run, error) {
	q := `
		INSERT INTO certificate_runs(id, identity_number, employee_name, entity_nit, entity_name, filename, drive_file_id, web_view_link, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, identity_number, employee_name, entity_nit, entity_name, filename, drive_file_id, web_view_link, active, generated_at`

	args := []any{
		uuid.New(),
		payload.IdentityNumber,
		payload.EmployeeName,
		payload.Entity.NIT,
		payload.Entity.Name,
		payload.Filename,
		ref.ID,
		ref.WebViewLink,
		payload.Active,
	}

	run, err := repository.QueryOne(ctx, s.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, sql.ErrNoRows, ErrDuplicateRun)
	}
	return &run, nil
}

func (s *service) Runs(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Run], error) {
	page.Normalize(s.pagination)

	q := `
		SELECT id, identity_number, employee_name, entity_nit, entity_name, filename, drive_file_id, web_view_link, active, generated_at
		FROM certificate_runs
		ORDER BY generated_at DESC
		LIMIT $1 OFFSET $2`

	// Count and page read in one transaction so the total matches the page.
	result, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (pagination.PageResult[Run], error) {
		var total int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificate_runs`).Scan(&total); err != nil {
			return pagination.PageResult[Run]{}, fmt.Errorf("count runs: %w", err)
		}

		runs, err := repository.QueryMany(ctx, tx, q, []any{page.PageSize, page.Offset()}, scanRun)
		if err != nil {
			return pagination.PageResult[Run]{}, fmt.Errorf("query runs: %w", err)
		}

		return pagination.NewPageResult(runs, total, page.Page, page.PageSize), nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.ID,
		&r.IdentityNumber,
		&r.EmployeeName,
		&r.EntityNIT,
		&r.EntityName,
		&r.Filename,
		&r.DriveFileID,
		&r.WebViewLink,
		&r.Active,
		&r.GeneratedAt,
	)
	return r, err
}
