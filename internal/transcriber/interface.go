package transcriber

import "context"

// Transcriber turns a waveform file into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
	Name() string
}
