package slackbot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
	"github.com/slack-go/slack"
)

// Messenger posts, updates and uploads through the Web API with the bot token
type Messenger struct {
	api *slack.Client
}

func NewMessenger(api *slack.Client) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) PostMessage(ctx context.Context, channel, text string) (string, error) {
	_, ts, err := m.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("chat.postMessage: %w", err)
	}
	return ts, nil
}

func (m *Messenger) UpdateMessage(ctx context.Context, channel, ts, text string) error {
	if _, _, _, err := m.api.UpdateMessageContext(ctx, channel, ts, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("chat.update: %w", err)
	}
	return nil
}

func (m *Messenger) PostReply(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := m.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("chat.postMessage reply: %w", err)
	}
	return nil
}

// UploadFile uploads path into channel, threaded under threadTS when set
func (m *Messenger) UploadFile(ctx context.Context, channel, threadTS, path, title string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat upload: %w", err)
	}

	name := title
	if name == "" {
		name = filepath.Base(path)
	}

	_, err = m.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:            path,
		FileSize:        int(info.Size()),
		Filename:        name,
		Title:           title,
		Channel:         channel,
		ThreadTimestamp: threadTS,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

func (m *Messenger) FileInfo(ctx context.Context, fileID string) (models.FileMetadata, error) {
	f, _, _, err := m.api.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		return models.FileMetadata{}, fmt.Errorf("files.info: %w", err)
	}

	url := f.URLPrivateDownload
	if url == "" {
		url = f.URLPrivate
	}
	return models.FileMetadata{
		ID:       f.ID,
		URL:      url,
		Name:     f.Name,
		Mimetype: f.Mimetype,
		Filetype: f.Filetype,
		Size:     f.Size,
	}, nil
}
