package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "CONFLICT_TRACKER_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	extractorKeyEnv  = "EXTRACTOR_API_KEY"
	extractorURLEnv  = "EXTRACTOR_ENDPOINT"
	redisAddrEnv     = "REDIS_ADDR"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Extractor     ExtractorConfig    `yaml:"extractor"`
	Dedup         DedupConfig        `yaml:"dedup"`
	Database      DatabaseConfig     `yaml:"database"`
	Gazetteer     GazetteerConfig    `yaml:"gazetteer"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Notifications NotificationConfig `yaml:"notifications"`
	Feeds         []FeedConfig       `yaml:"feeds"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines when recurring runs trigger.
type SchedulerConfig struct {
	IntervalHours int `yaml:"intervalHours"`
}

// PipelineConfig tunes the per-run behavior of the orchestrator.
type PipelineConfig struct {
	LookBackHours       int     `yaml:"lookBackHours"`
	FeedDelaySeconds    int     `yaml:"feedDelaySeconds"`
	OutputDir           string  `yaml:"outputDir"`
	ExportMinConfidence float64 `yaml:"exportMinConfidence"`
}

// ExtractorConfig defines how to contact the structured-extraction service.
type ExtractorConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	BatchSize      int    `yaml:"batchSize"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// DedupConfig selects and parameterizes the seen-identifier store.
type DedupConfig struct {
	Backend   string `yaml:"backend"` // memory, sqlite, redis
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redisAddr"`
	RedisDB   int    `yaml:"redisDb"`
}

// DatabaseConfig describes the Postgres export target.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GazetteerConfig points at an optional YAML extension of the built-in tables.
type GazetteerConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// FeedConfig describes a single source feed.
type FeedConfig struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Kind      string `yaml:"kind"`      // rss or html
	DomainTag string `yaml:"domainTag"` // scoped or general
	Priority  int    `yaml:"priority"`
	Encoding  string `yaml:"encoding"`
}

// Scoped reports whether the feed is already conflict-domain scoped.
func (f FeedConfig) Scoped() bool { return f.DomainTag == "scoped" }

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(extractorKeyEnv); v != "" {
		c.Extractor.APIKey = v
	}
	if v := os.Getenv(extractorURLEnv); v != "" {
		c.Extractor.Endpoint = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Dedup.RedisAddr = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	if override.Pipeline.LookBackHours > 0 {
		base.Pipeline.LookBackHours = override.Pipeline.LookBackHours
	}
	if override.Pipeline.FeedDelaySeconds > 0 {
		base.Pipeline.FeedDelaySeconds = override.Pipeline.FeedDelaySeconds
	}
	if override.Pipeline.OutputDir != "" {
		base.Pipeline.OutputDir = override.Pipeline.OutputDir
	}
	if override.Pipeline.ExportMinConfidence > 0 {
		base.Pipeline.ExportMinConfidence = override.Pipeline.ExportMinConfidence
	}

	if override.Extractor.Endpoint != "" {
		base.Extractor.Endpoint = override.Extractor.Endpoint
	}
	if override.Extractor.Model != "" {
		base.Extractor.Model = override.Extractor.Model
	}
	if override.Extractor.APIKey != "" {
		base.Extractor.APIKey = override.Extractor.APIKey
	}
	if override.Extractor.BatchSize > 0 {
		base.Extractor.BatchSize = override.Extractor.BatchSize
	}
	if override.Extractor.TimeoutSeconds > 0 {
		base.Extractor.TimeoutSeconds = override.Extractor.TimeoutSeconds
	}

	if override.Dedup.Backend != "" {
		base.Dedup = override.Dedup
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Gazetteer.Path != "" {
		base.Gazetteer = override.Gazetteer
	}

	if override.Metrics.Enabled {
		base.Metrics = override.Metrics
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{IntervalHours: 6},
		Pipeline: PipelineConfig{
			LookBackHours:       24,
			FeedDelaySeconds:    2,
			OutputDir:           "output",
			ExportMinConfidence: 0.60,
		},
		Extractor: ExtractorConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			BatchSize:      5,
			TimeoutSeconds: 60,
		},
		Dedup:    DedupConfig{Backend: "sqlite", Path: "dedup.db"},
		Database: DatabaseConfig{DSN: ""},
		Metrics:  MetricsConfig{Enabled: false, Addr: ":9102"},
		Feeds: []FeedConfig{
			{
				Name:      "premiumtimesng.com",
				URL:       "https://www.premiumtimesng.com/feed",
				Kind:      "rss",
				DomainTag: "general",
				Priority:  1,
			},
			{
				Name:      "dailytrust.com",
				URL:       "https://dailytrust.com/feed",
				Kind:      "rss",
				DomainTag: "general",
				Priority:  2,
			},
		},
	}
}
