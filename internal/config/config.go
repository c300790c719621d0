package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		// Token is normally left empty here and taken from the
		// TELEGRAM_BOT_TOKEN environment variable.
		Token       string `yaml:"token"`
		PollTimeout int    `yaml:"poll_timeout"`
	} `yaml:"telegram"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Sessions struct {
		Backend string `yaml:"backend"` // memory | redis
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			TTL      string `yaml:"ttl"`
		} `yaml:"redis"`
	} `yaml:"sessions"`
	Storage struct {
		Backend string `yaml:"backend"` // sheets | postgres
		Sheets  struct {
			SpreadsheetID   string `yaml:"spreadsheet_id"`
			CredentialsFile string `yaml:"credentials_file"`
			SheetName       string `yaml:"sheet_name"`
		} `yaml:"sheets"`
		Postgres struct {
			URL string `yaml:"url"`
		} `yaml:"postgres"`
	} `yaml:"storage"`
	Messages struct {
		Welcome      string `yaml:"welcome"`
		NoActiveQuiz string `yaml:"no_active_quiz"`
		Saved        string `yaml:"saved"`
		SaveFailed   string `yaml:"save_failed"`
	} `yaml:"messages"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = 60
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = "questions.json"
	}
	if c.Sessions.Backend == "" {
		c.Sessions.Backend = "memory"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "sheets"
	}
	if c.Storage.Sheets.CredentialsFile == "" {
		c.Storage.Sheets.CredentialsFile = "service_account.json"
	}
	if c.Storage.Sheets.SheetName == "" {
		c.Storage.Sheets.SheetName = "Sheet1"
	}
	if c.Messages.Welcome == "" {
		c.Messages.Welcome = "Hello and welcome! This short quiz will help us understand your values and how you'd like to contribute.\n\nUse /quiz to begin!"
	}
	if c.Messages.NoActiveQuiz == "" {
		c.Messages.NoActiveQuiz = "No quiz is running. Use /quiz to start one."
	}
	if c.Messages.Saved == "" {
		c.Messages.Saved = "Thank you for completing the quiz! Your responses have been recorded."
	}
	if c.Messages.SaveFailed == "" {
		c.Messages.SaveFailed = "Error saving responses. Please try again."
	}
}

// BotToken returns the configured token, falling back to the environment.
func (c Config) BotToken() string {
	if c.Telegram.Token != "" {
		return c.Telegram.Token
	}
	return os.Getenv("TELEGRAM_BOT_TOKEN")
}

// TTLDuration parses a duration string or returns the fallback if empty or
// malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
