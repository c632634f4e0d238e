package dispatcher

import (
	"context"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

// Dispatcher queues share events and runs them on a bounded pool
type Dispatcher interface {
	// Submit enqueues ev without blocking. It returns false when the event
	// was dropped as a duplicate or because the queue is full.
	Submit(ctx context.Context, ev models.ShareEvent) bool
	// Start runs queued events until ctx is cancelled, then waits for
	// in-flight runs.
	Start(ctx context.Context) error
	Stats() Stats
}

// Handler processes one event
type Handler func(ctx context.Context, ev models.ShareEvent) error

type Stats struct {
	Queued     int   `json:"queued"`
	Running    int64 `json:"running"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
	Duplicates int64 `json:"duplicates"`
}
