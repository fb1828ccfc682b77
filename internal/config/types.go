package config

// Config holds all configuration for the application.
type Config struct {
	DBName   string
	Port     string
	SeedFile string
	LogLevel string
	Slack    SlackConfig
	Turso    TursoConfig
	PubSub   PubSubConfig
}

// SlackConfig is optional; Slack notifications are off without a token.
type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether both token and channel are set.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

// TursoConfig selects a remote libsql primary instead of the local file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// PubSubConfig is optional; events are not published without a project.
type PubSubConfig struct {
	ProjectID   string
	TopicPrefix string
}

// Enabled reports whether a GCP project is configured.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != ""
}
