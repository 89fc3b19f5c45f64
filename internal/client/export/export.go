// Package export saves per-entry and per-snippet export files fetched from the
// API into a local directory.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/filex"
)

// Fetcher downloads the raw export file. *client.HTTPClient satisfies it.
type Fetcher interface {
	Export(ctx context.Context, kind models.ResourceKind, id models.ID, format models.ExportFormat) ([]byte, error)
}

type Saver struct {
	fetcher Fetcher
	dir     string
}

func NewSaver(fetcher Fetcher, dir string) *Saver {
	return &Saver{fetcher: fetcher, dir: dir}
}

func (s *Saver) Dir() string {
	return s.dir
}

// FileName is "<Label>-<id>.<ext>", e.g. "Entry-12.md".
func FileName(kind models.ResourceKind, id models.ID, format models.ExportFormat) string {
	return fmt.Sprintf("%s-%s.%s", kind.Label(), id, format.Extension())
}

// Export fetches the file and writes it under the export directory, returning
// the path written. Nothing is written when the fetch fails.
func (s *Saver) Export(ctx context.Context, kind models.ResourceKind, id models.ID, format models.ExportFormat) (string, error) {
	data, err := s.fetcher.Export(ctx, kind, id, format)
	if err != nil {
		return "", err
	}

	path, err := filex.WriteFile(s.dir, FileName(kind, id, format), data)
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	return path, nil
}

// FailureMessage is the user-facing text for an Export error: a plain
// "Export failed" for a rejected request, the cause otherwise.
func FailureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return "Export failed"
	}
	return "Export error: " + err.Error()
}

// SuccessMessage is the user-facing text for a saved export.
func SuccessMessage(path string) string {
	return "Exported to " + path
}
