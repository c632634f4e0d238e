package transcriber

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/minutes-bot/internal/config"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/pkg/executor"
)

type whisperTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

type openaiTranscriber struct {
	client   *openai.Client
	model    string
	language string
	logger   logger.Logger
}

// New creates the Transcriber selected by cfg.Provider
func New(cfg config.TranscriberConfig, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case config.ProviderWhisper, "":
		return NewWhisper(cfg.Whisper, exec, log), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAI, log), nil
	default:
		return nil, fmt.Errorf("unsupported transcriber provider %q", cfg.Provider)
	}
}

// NewWhisper creates a Transcriber that runs the whisper CLI
func NewWhisper(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// NewOpenAI creates a Transcriber backed by the OpenAI transcription API
func NewOpenAI(cfg config.OpenAIConfig, log logger.Logger) Transcriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &openaiTranscriber{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		language: cfg.Language,
		logger:   log,
	}
}
