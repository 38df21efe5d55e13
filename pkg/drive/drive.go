// Package drive provides certificate uploads to Google Drive with
// per-person folder organization and lifecycle coordination.
package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/corvalle/certilab/pkg/google"
	"github.com/corvalle/certilab/pkg/lifecycle"
)

const folderMimeType = "application/vnd.google-apps.folder"

// FileRef identifies an uploaded Drive file.
type FileRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"web_view_link"`
}

// System manages Drive uploads and lifecycle coordination.
type System interface {
	// Start registers a startup hook that verifies the destination folder.
	Start(lc *lifecycle.Coordinator) error
	// EnsurePersonFolder finds or creates the per-person subfolder for the
	// given employee and returns its folder ID.
	EnsurePersonFolder(ctx context.Context, fullName, identityNumber string) (string, error)
	// Upload streams a file into the given folder and returns its reference.
	Upload(ctx context.Context, folderID, filename, contentType string, r io.Reader) (*FileRef, error)
}

type system struct {
	svc      *drive.Service
	folderID string
	logger   *slog.Logger
}

// New creates a Drive system from the given configuration.
// Credentials are validated lazily; call Start to verify folder access.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	opts := google.CredentialOptions(cfg.Credentials, drive.DriveScope)

	svc, err := drive.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}

	return &system{
		svc:      svc,
		folderID: cfg.FolderID,
		logger:   logger.With("system", "drive"),
	}, nil
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting drive system")

	lc.OnStartup(func() {
		_, err := s.svc.Files.
			Get(s.folderID).
			Fields("id", "name").
			SupportsAllDrives(true).
			Context(lc.Context()).
			Do()
		if err != nil {
			s.logger.Error("drive folder check failed", "error", err)
			return
		}

		s.logger.Info("drive folder ready", "folder", s.folderID)
	})

	return nil
}

func (s *system) EnsurePersonFolder(ctx context.Context, fullName, identityNumber string) (string, error) {
	name := PersonFolderName(fullName, identityNumber)

	query := fmt.Sprintf(
		"name='%s' and '%s' in parents and mimeType='%s' and trashed=false",
		escapeQueryValue(name), s.folderID, folderMimeType,
	)

	list, err := s.svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("find person folder %s: %w", name, google.MapError(err))
	}

	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := s.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{s.folderID},
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create person folder %s: %w", name, google.MapError(err))
	}

	s.logger.Info("person folder created", "folder", name, "id", folder.Id)
	return folder.Id, nil
}

func (s *system) Upload(ctx context.Context, folderID, filename, contentType string, r io.Reader) (*FileRef, error) {
	if folderID == "" {
		folderID = s.folderID
	}

	file, err := s.svc.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id", "name", "webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, google.MapError(err))
	}

	return &FileRef{
		ID:          file.Id,
		Name:        file.Name,
		WebViewLink: file.WebViewLink,
	}, nil
}

// PersonFolderName builds the per-person folder name: "Nombre_Apellido_12345678".
func PersonFolderName(fullName, identityNumber string) string {
	name := strings.Join(strings.Fields(strings.TrimSpace(fullName)), "_")
	if name == "" {
		name = "Sin_Nombre"
	}
	return name + "_" + identityNumber
}

func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", "\\'")
}
