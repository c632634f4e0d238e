// Package inbox forwards media files dropped into a local folder to a chat
// channel. The upload raises a normal file share event, so the file goes
// through the same pipeline as a manual share.
package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

// Uploader uploads a local file to a channel. threadTS may be empty.
type Uploader interface {
	UploadFile(ctx context.Context, channel, threadTS, path, title string) error
}

type Forwarder struct {
	uploader    Uploader
	channel     string
	archivedDir string
	logger      logger.Logger
	now         func() time.Time
}

func New(uploader Uploader, channel, archivedDir string, log logger.Logger) *Forwarder {
	return &Forwarder{
		uploader:    uploader,
		channel:     channel,
		archivedDir: archivedDir,
		logger:      log,
		now:         time.Now,
	}
}

// Handle uploads path and moves it to the archived folder. A failed upload
// leaves the file in place so it can be retried by hand.
func (f *Forwarder) Handle(ctx context.Context, path string) error {
	name := filepath.Base(path)
	f.logger.Info(ctx, "Uploading %s to %s", name, f.channel)

	if err := f.uploader.UploadFile(ctx, f.channel, "", path, name); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}

	dest, err := f.archive(path)
	if err != nil {
		f.logger.Warn(ctx, "Failed to move %s to archived folder: %v", name, err)
		return nil
	}
	f.logger.Info(ctx, "Archived %s -> %s", name, dest)
	return nil
}

// archive moves path into the archived folder, adding a timestamp suffix
// when a file of the same name is already there.
func (f *Forwarder) archive(path string) (string, error) {
	name := filepath.Base(path)
	dest := filepath.Join(f.archivedDir, name)

	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		dest = filepath.Join(f.archivedDir, fmt.Sprintf("%s_%s%s", stem, f.now().Format("20060102_150405"), ext))
	}

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}
	return dest, nil
}
