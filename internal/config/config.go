package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StrataScan/internal/scoring"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" validate:"required"`
		Mode string `yaml:"mode" validate:"oneof=debug release test"`
	} `yaml:"server"`

	Data struct {
		FinnhubAPIKey string   `yaml:"finnhub_api_key"`
		FredAPIKey    string   `yaml:"fred_api_key"`
		Universe      []string `yaml:"universe"`
		UseMock       bool     `yaml:"use_mock"`
	} `yaml:"data"`

	Schedule struct {
		RefreshCron string `yaml:"refresh_cron" validate:"required"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Log struct {
		Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	// Scoring overrides the default score policy when present.
	Scoring *scoring.Policy `yaml:"scoring"`
}

// Load reads .env, then the YAML file, then applies environment variable
// overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	// .env is optional, for local development.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Data.FinnhubAPIKey = v
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.Data.FredAPIKey = v
	}
	if v := os.Getenv("USE_MOCK_DATA"); v == "true" || v == "1" {
		cfg.Data.UseMock = true
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Schedule.RefreshCron == "" {
		// Weekday market close, 22:30 UTC.
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Policy returns the configured scoring policy, or the default when none was
// provided.
func (c *Config) Policy() scoring.Policy {
	if c.Scoring != nil {
		return *c.Scoring
	}
	return scoring.DefaultPolicy()
}
