package transcoder

import "context"

// Transcoder converts a media file into a mono 16kHz 16-bit PCM waveform
type Transcoder interface {
	Transcode(ctx context.Context, srcPath, dir string) (string, error)
}
