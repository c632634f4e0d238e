package slackbot

import (
	"context"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

// Listener receives Socket Mode events and forwards file shares
type Listener interface {
	Start(ctx context.Context) error
}

// Sink receives file share events. It must not block on processing.
type Sink func(ctx context.Context, ev models.ShareEvent) bool
