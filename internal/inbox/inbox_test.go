package inbox

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

type fakeUploader struct {
	channel string
	title   string
	err     error
}

func (u *fakeUploader) UploadFile(ctx context.Context, channel, threadTS, path, title string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	u.channel = channel
	u.title = title
	return u.err
}

func setup(t *testing.T, up *fakeUploader) (*Forwarder, string, string) {
	t.Helper()
	inbox := t.TempDir()
	archived := t.TempDir()
	f := New(up, "C-INBOX", archived, logger.NewWithWriter(io.Discard, "info", "text"))
	f.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	return f, inbox, archived
}

func TestHandleUploadsAndArchives(t *testing.T) {
	up := &fakeUploader{}
	f, inbox, archived := setup(t, up)

	src := filepath.Join(inbox, "standup.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.Handle(context.Background(), src); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if up.channel != "C-INBOX" || up.title != "standup.mp4" {
		t.Errorf("upload = %+v", up)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still in inbox")
	}
	if _, err := os.Stat(filepath.Join(archived, "standup.mp4")); err != nil {
		t.Errorf("archived copy missing: %v", err)
	}
}

func TestHandleArchiveNameCollision(t *testing.T) {
	f, inbox, archived := setup(t, &fakeUploader{})

	if err := os.WriteFile(filepath.Join(archived, "standup.mp4"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(inbox, "standup.mp4")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.Handle(context.Background(), src); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(archived, "standup_20240501_103000.mp4")); err != nil {
		t.Errorf("timestamped archive missing: %v", err)
	}
}

func TestHandleUploadFailureKeepsFile(t *testing.T) {
	f, inbox, _ := setup(t, &fakeUploader{err: errors.New("not_in_channel")})

	src := filepath.Join(inbox, "standup.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.Handle(context.Background(), src); err == nil {
		t.Fatal("Handle() error = nil")
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source removed after failed upload: %v", err)
	}
}
