package transcriber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/minutes-bot/internal/config"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/pkg/executor"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "info", "text")
}

type fakeExecutor struct {
	dir  string
	name string
	args []string
	out  string
	err  error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.dir, f.name, f.args = dir, name, args
	return f.out, f.err
}

func TestWhisperTranscribe(t *testing.T) {
	exec := &fakeExecutor{out: "hello world\n"}
	tr := NewWhisper(config.WhisperConfig{
		BinaryPath: "whisper",
		Model:      "base",
		Language:   "ja",
		ExtraArgs:  []string{"--fp16", "False"},
	}, exec, testLogger())

	got, err := tr.Transcribe(context.Background(), "/scratch/run-1/audio.wav")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "hello world\n" {
		t.Errorf("Transcribe() = %q, want %q", got, "hello world\n")
	}
	if exec.dir != "/scratch/run-1" {
		t.Errorf("working dir = %v, want %v", exec.dir, "/scratch/run-1")
	}
	wantArgs := "audio.wav --model base --language ja --fp16 False"
	if strings.Join(exec.args, " ") != wantArgs {
		t.Errorf("args = %v, want %v", strings.Join(exec.args, " "), wantArgs)
	}
}

func TestWhisperFailures(t *testing.T) {
	tests := []struct {
		name    string
		exec    *fakeExecutor
		wantErr func(error) bool
	}{
		{
			name: "non-zero exit",
			exec: &fakeExecutor{err: &executor.ExitError{Name: "whisper", ExitCode: 1, Err: errors.New("exit status 1")}},
			wantErr: func(err error) bool {
				var exitErr *executor.ExitError
				return errors.As(err, &exitErr)
			},
		},
		{
			name:    "empty output",
			exec:    &fakeExecutor{out: "  \n"},
			wantErr: func(err error) bool { return errors.Is(err, ErrEmptyTranscript) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewWhisper(config.WhisperConfig{BinaryPath: "whisper", Model: "base"}, tt.exec, testLogger())
			_, err := tr.Transcribe(context.Background(), "/tmp/audio.wav")
			if !tt.wantErr(err) {
				t.Errorf("Transcribe() error = %v", err)
			}
		})
	}
}

func TestOpenAITranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer srv.Close()

	wavPath := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(wavPath, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := NewOpenAI(config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, testLogger())
	got, err := tr.Transcribe(context.Background(), wavPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Transcribe() = %q, want %q", got, "hello world")
	}
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{"", "whisper", false},
		{config.ProviderWhisper, "whisper", false},
		{config.ProviderOpenAI, "openai", false},
		{"vosk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			tr, err := New(config.TranscriberConfig{Provider: tt.provider, OpenAI: config.OpenAIConfig{APIKey: "k"}}, &fakeExecutor{}, testLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tr.Name() != tt.want {
				t.Errorf("Name() = %v, want %v", tr.Name(), tt.want)
			}
		})
	}
}
