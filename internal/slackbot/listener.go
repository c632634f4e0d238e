package slackbot

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// Start runs the Socket Mode connection and the event loop until ctx is
// cancelled or the connection fails.
func (l *implListener) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.client.RunContext(ctx)
	}()

	l.logger.Info(ctx, "Socket Mode listener started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info(ctx, "Socket Mode listener stopped")
			return ctx.Err()

		case err := <-errCh:
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("socket mode: %w", err)
			}
			return ctx.Err()

		case evt, ok := <-l.client.Events:
			if !ok {
				return fmt.Errorf("socket mode events channel closed")
			}
			l.handle(ctx, evt)
		}
	}
}

// handle acknowledges the request before anything else so slow downstream
// work never delays the acknowledgement.
func (l *implListener) handle(ctx context.Context, evt socketmode.Event) {
	if needsAck(evt) {
		l.acker.Ack(*evt.Request)
	}

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		l.logger.Info(ctx, "Connecting to Slack with Socket Mode...")
		return
	case socketmode.EventTypeConnected:
		l.logger.Info(ctx, "Connected to Slack with Socket Mode")
		return
	case socketmode.EventTypeConnectionError:
		l.logger.Warn(ctx, "Socket Mode connection failed, retrying: %v", evt.Data)
		return
	case socketmode.EventTypeHello, socketmode.EventTypeDisconnect:
		l.logger.Debug(ctx, "Socket Mode %s", evt.Type)
		return
	}

	ev, ok, reason := classify(evt)
	if !ok {
		l.logger.Info(ctx, "Skipped processing: %s", reason)
		return
	}

	l.logger.Info(ctx, "File shared by %s in %s with file ID %s", ev.UserID, ev.ChannelID, ev.FileID)
	if !l.sink(ctx, ev) {
		l.logger.Warn(ctx, "File %s was not queued", ev.FileID)
	}
}

// needsAck reports whether evt is a request Slack waits on. hello and
// disconnect frames carry a Request with no envelope id and get no reply.
func needsAck(evt socketmode.Event) bool {
	if evt.Request == nil || evt.Request.EnvelopeID == "" {
		return false
	}
	switch evt.Type {
	case socketmode.EventTypeEventsAPI, socketmode.EventTypeInteractive, socketmode.EventTypeSlashCommand:
		return true
	}
	return false
}

// classify extracts a ShareEvent from a file_shared events_api request.
// reason describes why any other event was skipped.
func classify(evt socketmode.Event) (models.ShareEvent, bool, string) {
	if evt.Type != socketmode.EventTypeEventsAPI {
		return models.ShareEvent{}, false, fmt.Sprintf("request type %s", evt.Type)
	}

	apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return models.ShareEvent{}, false, fmt.Sprintf("unexpected events_api payload %T", evt.Data)
	}
	if apiEvent.Type != slackevents.CallbackEvent {
		return models.ShareEvent{}, false, fmt.Sprintf("events_api type %s", apiEvent.Type)
	}

	shared, ok := apiEvent.InnerEvent.Data.(*slackevents.FileSharedEvent)
	if !ok {
		return models.ShareEvent{}, false, fmt.Sprintf("event type %s", apiEvent.InnerEvent.Type)
	}
	if shared.FileID == "" || shared.ChannelID == "" {
		return models.ShareEvent{}, false, "file_shared without file or channel id"
	}

	return models.ShareEvent{
		FileID:    shared.FileID,
		UserID:    shared.UserID,
		ChannelID: shared.ChannelID,
	}, true, ""
}
