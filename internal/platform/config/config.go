package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	GCPKey                 string `env:"GCP_KEY"`
	SlackOAuthToken        string `env:"SLACK_OAUTH_TOKEN"`
	SlackVerificationToken string `env:"SLACK_VERIFICATION_TOKEN"`

	SentimentAPIURL string `env:"SENTIMENT_API_URL" default:"https://language.googleapis.com/v1/documents:analyzeSentiment"`
	SlackAPIURL     string `env:"SLACK_API_URL" default:"https://slack.com/api/"`

	EmojiTablePath       string        `env:"EMOJI_TABLE_PATH" default:"./emoji.json"`
	LongMessageThreshold int           `env:"LONG_MESSAGE_THRESHOLD" default:"180"`
	OutboundTimeout      time.Duration `env:"OUTBOUND_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	// checked in a fixed order so the reported variable is stable
	required := []struct{ name, value string }{
		{"GCP_KEY", cfg.GCPKey},
		{"SLACK_OAUTH_TOKEN", cfg.SlackOAuthToken},
		{"EMOJI_TABLE_PATH", cfg.EmojiTablePath},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	for name, raw := range map[string]string{
		"SENTIMENT_API_URL": cfg.SentimentAPIURL,
		"SLACK_API_URL":     cfg.SlackAPIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if cfg.LongMessageThreshold < 1 {
		return errors.New("LONG_MESSAGE_THRESHOLD must be positive")
	}
	if cfg.OutboundTimeout <= 0 {
		return errors.New("OUTBOUND_TIMEOUT must be positive")
	}

	return nil
}
