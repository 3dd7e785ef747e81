// Package config defines the configuration schema for the corviu client.
//
// JSON keys use camelCase to match the config files written by earlier
// releases of the embeddable widget.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the hosted corviu service.
const DefaultEndpoint = "https://corviu.railway.app"

// SlackNotifyConfig configures the Slack notification sink.
type SlackNotifyConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"botToken"`
	Channel  string `json:"channel"`
}

// TelegramNotifyConfig configures the Telegram notification sink.
type TelegramNotifyConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chatId"`
}

// NotifyConfig holds all notification sinks.
type NotifyConfig struct {
	Slack    SlackNotifyConfig    `json:"slack"`
	Telegram TelegramNotifyConfig `json:"telegram"`
}

// DigestConfig controls scheduled view refreshes.
type DigestConfig struct {
	// Schedule is a cron expression for periodic digest refreshes.
	// Empty disables the cron schedule.
	Schedule string `json:"schedule,omitempty"`
	// PollIntervalMs refreshes views on a fixed interval in addition to
	// push-driven refresh. Zero disables polling.
	PollIntervalMs int `json:"pollIntervalMs,omitempty"`
	// ViewsFile points at the YAML views manifest. Empty uses ViewsPath().
	ViewsFile string `json:"viewsFile,omitempty"`
}

// PollInterval returns the polling interval as a duration.
func (d DigestConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalMs) * time.Millisecond
}

// Config is the full client configuration.
type Config struct {
	// Endpoint is the base service URL.
	Endpoint string `json:"endpoint"`
	// Project scopes the push channel and all summary queries.
	// Empty means no channel is opened.
	Project string `json:"project,omitempty"`
	// Credential is sent as a bearer token on request/response calls.
	Credential string `json:"credential,omitempty"`
	// Debug enables debug-level logging.
	Debug bool `json:"debug"`
	// ReconnectDelayMs is the fixed delay between channel reconnect attempts.
	ReconnectDelayMs int `json:"reconnectDelayMs"`

	Notify NotifyConfig `json:"notify"`
	Digest DigestConfig `json:"digest"`
}

// ReconnectDelay returns the reconnect delay as a duration.
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelayMs) * time.Millisecond
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		ReconnectDelayMs: 5000,
		Digest: DigestConfig{
			Schedule: "0 9 * * *",
		},
	}
}

// DataDir returns the corviu data directory: ~/.corviu.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".corviu"
	}
	return filepath.Join(home, ".corviu")
}

// ConfigPath returns the default configuration file path: ~/.corviu/config.json.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// ViewsPath returns the default views manifest path: ~/.corviu/views.yaml.
func ViewsPath() string {
	return filepath.Join(DataDir(), "views.yaml")
}
