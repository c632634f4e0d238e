package config

import (
	"fmt"
	"time"
)

type Config struct {
	Slack       SlackConfig       `yaml:"slack"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Dedupe      DedupeConfig      `yaml:"dedupe"`
	HTTP        HTTPConfig        `yaml:"http"`
	Output      OutputConfig      `yaml:"output"`
}

type SlackConfig struct {
	AppToken     string `yaml:"app_token"`
	BotToken     string `yaml:"bot_token"`
	Debug        bool   `yaml:"debug"`
	InboxChannel string `yaml:"inbox_channel"`
}

type SummarizerConfig struct {
	Provider string       `yaml:"provider"`
	Dify     DifyConfig   `yaml:"dify"`
	Gemini   GeminiConfig `yaml:"gemini"`
}

type DifyConfig struct {
	Endpoint     string                 `yaml:"endpoint"`
	APIKey       string                 `yaml:"api_key"`
	User         string                 `yaml:"user"`
	ResponseMode string                 `yaml:"response_mode"`
	Inputs       map[string]interface{} `yaml:"inputs"`
	Files        []DifyFile             `yaml:"files"`
	Timeout      time.Duration          `yaml:"timeout"`
}

type DifyFile struct {
	Type           string `yaml:"type"`
	TransferMethod string `yaml:"transfer_method"`
	URL            string `yaml:"url"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
	Prompt  string   `yaml:"prompt"`
}

type TranscriberConfig struct {
	Provider string        `yaml:"provider"`
	Whisper  WhisperConfig `yaml:"whisper"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
}

type WhisperConfig struct {
	BinaryPath string   `yaml:"binary_path"`
	Model      string   `yaml:"model"`
	Language   string   `yaml:"language"`
	ExtraArgs  []string `yaml:"extra_args"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Scratch  string `yaml:"scratch"`
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	QueueSize     int `yaml:"queue_size"`
}

type DedupeConfig struct {
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type OutputConfig struct {
	AttachDocx bool `yaml:"attach_docx"`
}

const (
	ProviderDify    = "dify"
	ProviderGemini  = "gemini"
	ProviderWhisper = "whisper"
	ProviderOpenAI  = "openai"
)

func (c *Config) Validate() error {
	if c.Slack.AppToken == "" {
		return fmt.Errorf("slack.app_token is required")
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("slack.bot_token is required")
	}

	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = ProviderDify
	}
	switch c.Summarizer.Provider {
	case ProviderDify:
		if c.Summarizer.Dify.Endpoint == "" {
			return fmt.Errorf("summarizer.dify.endpoint is required")
		}
		if c.Summarizer.Dify.APIKey == "" {
			return fmt.Errorf("summarizer.dify.api_key is required")
		}
		if c.Summarizer.Dify.ResponseMode == "" {
			c.Summarizer.Dify.ResponseMode = "blocking"
		}
		if c.Summarizer.Dify.ResponseMode != "blocking" {
			return fmt.Errorf("summarizer.dify.response_mode %q is not supported, use blocking", c.Summarizer.Dify.ResponseMode)
		}
		if c.Summarizer.Dify.User == "" {
			c.Summarizer.Dify.User = "minutes-bot"
		}
	case ProviderGemini:
		if len(c.Summarizer.Gemini.APIKeys) == 0 {
			return fmt.Errorf("summarizer.gemini.api_keys is required")
		}
		if c.Summarizer.Gemini.Model == "" {
			c.Summarizer.Gemini.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}

	if c.Transcriber.Provider == "" {
		c.Transcriber.Provider = ProviderWhisper
	}
	switch c.Transcriber.Provider {
	case ProviderWhisper:
		if c.Transcriber.Whisper.BinaryPath == "" {
			c.Transcriber.Whisper.BinaryPath = "whisper"
		}
		if c.Transcriber.Whisper.Model == "" {
			c.Transcriber.Whisper.Model = "base"
		}
	case ProviderOpenAI:
		if c.Transcriber.OpenAI.APIKey == "" {
			return fmt.Errorf("transcriber.openai.api_key is required")
		}
		if c.Transcriber.OpenAI.Model == "" {
			c.Transcriber.OpenAI.Model = "whisper-1"
		}
	default:
		return fmt.Errorf("transcriber.provider %q is not supported", c.Transcriber.Provider)
	}

	if c.Paths.Inbox != "" && c.Slack.InboxChannel == "" {
		return fmt.Errorf("slack.inbox_channel is required when paths.inbox is set")
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Paths.Scratch == "" {
		c.Paths.Scratch = "data/scratch"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Performance.QueueSize <= 0 {
		c.Performance.QueueSize = 16
	}
	if c.Dedupe.TTL <= 0 {
		c.Dedupe.TTL = 10 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
