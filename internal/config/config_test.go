package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"DB_NAME": "tournament.db"}))
	require.NoError(t, err)

	assert.Equal(t, "tournament.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/tournament.seed.json", cfg.SeedFile)
	assert.False(t, cfg.Slack.Enabled())
	assert.False(t, cfg.PubSub.Enabled())
}

func TestFromEnv_Integrations(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"DB_NAME":             "tournament.db",
		"PORT":                "9000",
		"SLACK_BOT_TOKEN":     "xoxb-1",
		"SLACK_CHANNEL_ID":    "C123",
		"GCP_PROJECT":         "shuttle",
		"PUBSUB_TOPIC_PREFIX": "dev-",
		"LOG_LEVEL":           "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Slack.Enabled())
	assert.True(t, cfg.PubSub.Enabled())
	assert.Equal(t, "dev-", cfg.PubSub.TopicPrefix)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_Errors(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{}))
	assert.ErrorContains(t, err, "DB_NAME")

	_, err = FromEnv(lookupFrom(map[string]string{"DB_NAME": "x", "LOG_LEVEL": "loud"}))
	assert.ErrorContains(t, err, "LOG_LEVEL")

	_, err = FromEnv(lookupFrom(map[string]string{"TURSO_PRIMARY_URL": "libsql://shuttle.turso.io"}))
	assert.NoError(t, err, "a remote primary needs no local file")
}
