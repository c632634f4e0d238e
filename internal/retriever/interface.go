package retriever

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

// Retriever fetches a shared file into local scratch storage
type Retriever interface {
	Retrieve(ctx context.Context, meta models.FileMetadata, dir string) (string, error)
}

// Downloader performs an authenticated GET of a private file URL.
// *slack.Client satisfies it.
type Downloader interface {
	GetFileContext(ctx context.Context, downloadURL string, writer io.Writer) error
}
