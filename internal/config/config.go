// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/DaDevFox/job-track/internal/scraper"
)

// SourceConfig pairs a source id with the search it should run. The search
// fields inline so a source entry in YAML reads flat.
type SourceConfig struct {
	Source               string `yaml:"source"`
	scraper.SearchConfig `yaml:",inline"`
}

type Config struct {
	Sources []SourceConfig `yaml:"sources"`
	//Refresh re-stores postings whose apply URL is already known
	Refresh bool `yaml:"refresh"`
	Headful bool `yaml:"headful"`
	//Paths
	CachePath  string `yaml:"cache_path"`
	OutputPath string `yaml:"output_path"`
	//Telegram is optional; without a token runs just skip notifications
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if os.Getenv("HEADFUL") == "1" {
		cfg.Headful = true
	}

	//Set default values if not set
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = "logs"
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = []SourceConfig{
			{Source: "simplify", SearchConfig: scraper.SearchConfig{NewGradOnly: true}},
		}
	}

	return cfg, nil
}
