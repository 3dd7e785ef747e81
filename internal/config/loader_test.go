package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint %q, got %q", DefaultEndpoint, cfg.Endpoint)
	}
	if cfg.ReconnectDelayMs != 5000 {
		t.Errorf("expected default reconnect delay 5000, got %d", cfg.ReconnectDelayMs)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"endpoint":         "https://corviu.example.com",
		"project":          "p-42",
		"credential":       "tok",
		"reconnectDelayMs": 250,
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != "https://corviu.example.com" {
		t.Errorf("unexpected endpoint: %q", cfg.Endpoint)
	}
	if cfg.Project != "p-42" {
		t.Errorf("unexpected project: %q", cfg.Project)
	}
	if cfg.ReconnectDelayMs != 250 {
		t.Errorf("unexpected reconnectDelayMs: %d", cfg.ReconnectDelayMs)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint %q, got %q", DefaultEndpoint, cfg.Endpoint)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Project = "p-7"
	cfg.Notify.Slack.Enabled = true
	cfg.Notify.Slack.Channel = "#changes"
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Project != "p-7" {
		t.Errorf("unexpected project: %q", got.Project)
	}
	if !got.Notify.Slack.Enabled || got.Notify.Slack.Channel != "#changes" {
		t.Errorf("slack notify config not preserved: %+v", got.Notify.Slack)
	}
}

func TestReconnectDelay(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ReconnectDelay().Milliseconds() != 5000 {
		t.Errorf("unexpected delay: %v", cfg.ReconnectDelay())
	}
}
