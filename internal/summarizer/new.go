package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/nguyentantai21042004/minutes-bot/internal/config"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

type difySummarizer struct {
	cfg    config.DifyConfig
	client *http.Client
	logger logger.Logger
}

type geminiSummarizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	prompt     string
	generate   func(ctx context.Context, apiKey, prompt string) (string, error)
}

// New creates the Summarizer selected by cfg.Provider
func New(cfg config.SummarizerConfig, log logger.Logger) (Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderDify, "":
		return NewDify(cfg.Dify, &http.Client{Timeout: cfg.Dify.Timeout}, log), nil
	case config.ProviderGemini:
		return NewGemini(cfg.Gemini, log), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider %q", cfg.Provider)
	}
}

// NewDify creates a Summarizer for a Dify chat-messages endpoint
func NewDify(cfg config.DifyConfig, client *http.Client, log logger.Logger) Summarizer {
	if client == nil {
		client = http.DefaultClient
	}
	return &difySummarizer{
		cfg:    cfg,
		client: client,
		logger: log,
	}
}

// NewGemini creates a Summarizer that rotates through the supplied Gemini API keys.
func NewGemini(cfg config.GeminiConfig, log logger.Logger) Summarizer {
	s := &geminiSummarizer{
		apiKeys: cfg.APIKeys,
		logger:  log,
		model:   cfg.Model,
		prompt:  cfg.Prompt,
	}
	if s.model == "" {
		s.model = "gemini-2.5-flash"
	}
	if s.prompt == "" {
		s.prompt = defaultPrompt
	}
	s.generate = s.callGemini
	return s
}
