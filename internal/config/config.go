// Package config loads and exposes application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values used when an optional variable is unset.
const (
	DefaultPollInterval = 15 * time.Second
	DefaultPageSize     = 5
	DefaultSeenCapacity = 10000
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig
	Store    StoreConfig
	Telegram TelegramConfig
	Watcher  WatcherConfig
	PageSize int
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig holds the PostgreSQL connection URL. The store credential is
// carried inside the URL userinfo section.
type StoreConfig struct {
	URL string
}

// TelegramConfig holds the bot token, the broadcast target for login
// notifications (numeric chat id or @channel name), and the operator
// allow-list.
type TelegramConfig struct {
	BotToken      string
	BroadcastChat string
	AdminIDs      []int64
}

// WatcherConfig holds the login watcher poll interval and the capacity of
// its seen-id set.
type WatcherConfig struct {
	PollInterval time.Duration
	SeenCapacity int
}

// Load reads configuration from environment variables and validates the
// required ones. Missing required variables is a startup-fatal error.
func Load() (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", DefaultLogLevel),
			Format: envOr("LOG_FORMAT", DefaultLogFormat),
		},
		Store: StoreConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Telegram: TelegramConfig{
			BotToken:      os.Getenv("BOT_TOKEN"),
			BroadcastChat: os.Getenv("BROADCAST_CHAT_ID"),
		},
		Watcher: WatcherConfig{
			PollInterval: DefaultPollInterval,
			SeenCapacity: DefaultSeenCapacity,
		},
		PageSize: DefaultPageSize,
	}

	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("POLL_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return Config{}, fmt.Errorf("POLL_INTERVAL must be positive, got %s", interval)
		}
		cfg.Watcher.PollInterval = interval
	}
	if raw := os.Getenv("SEEN_CAPACITY"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity <= 0 {
			return Config{}, fmt.Errorf("SEEN_CAPACITY must be a positive integer, got %q", raw)
		}
		cfg.Watcher.SeenCapacity = capacity
	}
	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("PAGE_SIZE must be a positive integer, got %q", raw)
		}
		cfg.PageSize = size
	}

	admins, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return Config{}, err
	}
	cfg.Telegram.AdminIDs = admins

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Store.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Telegram.BroadcastChat == "" {
		return fmt.Errorf("BROADCAST_CHAT_ID is required")
	}
	if len(c.Telegram.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS requires at least one operator id")
	}
	return nil
}

func parseAdminIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid operator id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
