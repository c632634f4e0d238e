package transcoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
)

const (
	waveformName = "audio.wav"
	sampleRate   = 16000
	channels     = 1
	bitDepth     = 16
)

// ErrInvalidWaveform is returned when ffmpeg exited cleanly but the output
// is not the expected mono 16kHz 16-bit PCM audio.
var ErrInvalidWaveform = errors.New("invalid waveform")

// Transcode extracts audio from srcPath into dir/audio.wav.
// -y overwrites a previous output deterministically.
func (t *implTranscoder) Transcode(ctx context.Context, srcPath, dir string) (string, error) {
	out := OutputPath(srcPath, dir)

	t.logger.Info(ctx, "Extracting audio: %s -> %s", srcPath, out)

	args := []string{
		"-y",
		"-i", srcPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		out,
	}

	if _, err := t.executor.Execute(ctx, t.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	if err := validate(out); err != nil {
		return "", err
	}

	t.logger.Info(ctx, "Audio extracted successfully: %s", out)
	return out, nil
}

// OutputPath is the fixed waveform location inside a run directory
func OutputPath(srcPath, dir string) string {
	out := filepath.Join(dir, waveformName)
	if filepath.Clean(srcPath) == out {
		out = filepath.Join(dir, "converted-"+waveformName)
	}
	return out
}

func validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrInvalidWaveform, path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return fmt.Errorf("%w: %s is not a wav file", ErrInvalidWaveform, path)
	}
	if d.NumChans != channels || d.SampleRate != sampleRate || d.BitDepth != bitDepth {
		return fmt.Errorf("%w: got %d ch / %d Hz / %d bit, want %d ch / %d Hz / %d bit",
			ErrInvalidWaveform, d.NumChans, d.SampleRate, d.BitDepth, channels, sampleRate, bitDepth)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewind %s: %w", ErrInvalidWaveform, path, err)
	}
	dur, err := wav.NewDecoder(f).Duration()
	if err != nil {
		return fmt.Errorf("%w: read duration: %w", ErrInvalidWaveform, err)
	}
	if dur <= 0 {
		return fmt.Errorf("%w: %s contains no audio", ErrInvalidWaveform, path)
	}

	return nil
}
