package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when MINUTES_CONFIG is not set
const DefaultPath = "config.yaml"

// Load reads the YAML file at path, applies environment overrides for
// secrets and validates the result. A .env file in the working directory
// is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// PathFromEnv returns MINUTES_CONFIG or DefaultPath
func PathFromEnv() string {
	if p := os.Getenv("MINUTES_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set("SLACK_APP_TOKEN", &c.Slack.AppToken)
	set("SLACK_BOT_TOKEN", &c.Slack.BotToken)
	set("DIFY_API_KEY", &c.Summarizer.Dify.APIKey)
	set("DIFY_ENDPOINT", &c.Summarizer.Dify.Endpoint)
	set("OPENAI_API_KEY", &c.Transcriber.OpenAI.APIKey)
	set("MINUTES_LOG_LEVEL", &c.Logging.Level)

	if v, ok := lookup("GEMINI_API_KEYS"); ok && strings.TrimSpace(v) != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.Summarizer.Gemini.APIKeys = keys
	}
}
