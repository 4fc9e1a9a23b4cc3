package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Telegram Telegram `yaml:"telegram"`
	Session  Session  `yaml:"session"`
}

type Telegram struct {
	BotToken    string `yaml:"bot-token" env:"BOT_TOKEN"`
	PollTimeout int    `yaml:"poll-timeout" env:"POLL_TIMEOUT" env-default:"30"`
}

type Session struct {
	IdleTimeout   time.Duration `yaml:"idle-timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"15m"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

// MustLoad - loads the configuration from the given file, with
// environment variables taking precedence. The bot is often run with
// just BOT_TOKEN set, so a missing file falls back to env-only.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err != nil {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
