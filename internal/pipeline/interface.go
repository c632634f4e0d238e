package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

// Pipeline runs one share event through download, transcode, transcribe,
// summarize and posting. It holds no state across events.
type Pipeline interface {
	Run(ctx context.Context, ev models.ShareEvent) error
}

// Messenger is the outbound side of the chat platform
type Messenger interface {
	// PostMessage posts a new message and returns its timestamp id
	PostMessage(ctx context.Context, channel, text string) (string, error)
	UpdateMessage(ctx context.Context, channel, ts, text string) error
	PostReply(ctx context.Context, channel, threadTS, text string) error
	UploadFile(ctx context.Context, channel, threadTS, path, title string) error
}

// FileLookup resolves a shared file id to its metadata
type FileLookup interface {
	FileInfo(ctx context.Context, fileID string) (models.FileMetadata, error)
}
