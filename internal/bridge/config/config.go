package config

import (
	"time"

	"golang-lean-bridge/pkg/config"
)

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Lean holds the configuration for the LEAN CLI.
type Lean struct {
	Binary         string        `mapstructure:"binary"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	ProjectsDir    string        `mapstructure:"projects_dir"`
}

// Parser holds configuration for the strategy parser.
type Parser struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Risk holds the location of the risk settings file.
type Risk struct {
	SettingsPath string `mapstructure:"settings_path"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the bridge service.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	API      config.API    `mapstructure:"api"`
	Gemini   Gemini        `mapstructure:"gemini"`
	Lean     Lean          `mapstructure:"lean"`
	Parser   Parser        `mapstructure:"parser"`
	Risk     Risk          `mapstructure:"risk"`
	Telegram Telegram      `mapstructure:"telegram"`
}

// Load loads the bridge configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Lean.Binary == "" {
		cfg.Lean.Binary = "lean"
	}
	if cfg.Lean.CommandTimeout == 0 {
		cfg.Lean.CommandTimeout = 10 * time.Minute
	}
	return &cfg, nil
}
