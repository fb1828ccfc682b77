package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultPort     = "8080"
	defaultSeedFile = "data/tournament.seed.json"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. DB_NAME is the only required
// variable; every integration is disabled when its variables are empty.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:   getEnv("DB_NAME", ""),
		Port:     getEnv("PORT", defaultPort),
		SeedFile: getEnv("SEED_FILE", defaultSeedFile),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getEnv("GCP_PROJECT", ""),
			TopicPrefix: getEnv("PUBSUB_TOPIC_PREFIX", ""),
		},
	}

	if cfg.DBName == "" && cfg.Turso.PrimaryURL == "" {
		return Config{}, fmt.Errorf("required environment variable DB_NAME is not set")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}
