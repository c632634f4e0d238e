package retriever

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

// ErrDownload marks a failed fetch; the caller must not proceed
var ErrDownload = errors.New("download failed")

// Retrieve writes the file body to dir/<display name> and returns the path.
// A partial file is removed on failure.
func (r *implRetriever) Retrieve(ctx context.Context, meta models.FileMetadata, dir string) (string, error) {
	if meta.URL == "" {
		return "", fmt.Errorf("%w: %s has no download URL", ErrDownload, meta.Name)
	}

	path := filepath.Join(dir, localName(meta.Name))
	r.logger.Info(ctx, "Attempting to download file: %s from %s", meta.Name, meta.URL)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := r.downloader.GetFileContext(ctx, meta.URL, f); err != nil {
		f.Close()
		r.removePartial(ctx, path)
		r.logger.Warn(ctx, "Failed to download file: %s: %v", meta.Name, err)
		return "", fmt.Errorf("%w: %s: %w", ErrDownload, meta.Name, err)
	}

	if err := f.Close(); err != nil {
		r.removePartial(ctx, path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	r.logger.Info(ctx, "File saved: %s", path)
	return path, nil
}

func (r *implRetriever) removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn(ctx, "Failed to remove partial download %s: %v", path, err)
	}
}

// localName keeps only the final element of a display name so a shared
// file can never write outside the run directory.
func localName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch base {
	case "", ".", "..", "/":
		return "source"
	}
	return base
}
