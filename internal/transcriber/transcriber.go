package transcriber

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript is returned when the tool succeeded but produced no text
var ErrEmptyTranscript = errors.New("empty transcript")

func (w *whisperTranscriber) Name() string { return "whisper" }

// Transcribe runs whisper inside the waveform's directory so any side
// files it writes (txt, srt, vtt, json) stay in the run's scratch space.
func (w *whisperTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	dir := filepath.Dir(wavPath)

	args := []string{filepath.Base(wavPath), "--model", w.cfg.Model}
	if w.cfg.Language != "" {
		args = append(args, "--language", w.cfg.Language)
	}
	args = append(args, w.cfg.ExtraArgs...)

	w.logger.Info(ctx, "Starting transcription (model %s): %s", w.cfg.Model, wavPath)

	out, err := w.executor.ExecuteInDir(ctx, dir, w.cfg.BinaryPath, args...)
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyTranscript
	}

	w.logger.Info(ctx, "Transcription completed: %d bytes", len(out))
	return out, nil
}

func (o *openaiTranscriber) Name() string { return "openai" }

func (o *openaiTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	o.logger.Info(ctx, "Starting transcription (openai %s): %s", o.model, wavPath)

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: wavPath,
		Language: o.language,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyTranscript
	}

	o.logger.Info(ctx, "Transcription completed: %d bytes", len(resp.Text))
	return resp.Text, nil
}
