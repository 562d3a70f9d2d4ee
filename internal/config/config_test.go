package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Assistant: AssistantConfig{Model: "gpt-4o"},
		Auth:      AuthConfig{AllowAnonymous: true},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("Dimensions = %d, want 1536", cfg.Embedding.Dimensions)
	}
	if cfg.Assistant.MaxToolRounds != 5 {
		t.Errorf("MaxToolRounds = %d, want 5", cfg.Assistant.MaxToolRounds)
	}
	if cfg.Assistant.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Assistant.MaxRetries)
	}
	if cfg.Conversation.HistoryWindow != 20 {
		t.Errorf("HistoryWindow = %d, want 20", cfg.Conversation.HistoryWindow)
	}
	if cfg.Conversation.RetentionSec != 7*24*3600 {
		t.Errorf("RetentionSec = %d, want one week", cfg.Conversation.RetentionSec)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(_ *Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"no db addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"no embedding model", func(c *Config) { c.Embedding.Model = "" }, "embedding.model"},
		{"no assistant model", func(c *Config) { c.Assistant.Model = "" }, "assistant.model"},
		{"empty api key", func(c *Config) {
			c.Auth.APIKeys = []APIKey{{Key: ""}}
		}, "api_keys[0]"},
		{"no auth at all", func(c *Config) {
			c.Auth.AllowAnonymous = false
		}, "auth requires"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("STAYLENS_TEST_KEY", "secret")

	out := string(expandEnvVars([]byte("api_key: ${STAYLENS_TEST_KEY}")))
	if out != "api_key: secret" {
		t.Errorf("expandEnvVars = %q", out)
	}

	out = string(expandEnvVars([]byte("port: ${STAYLENS_MISSING:-8080}")))
	if out != "port: 8080" {
		t.Errorf("expandEnvVars default = %q", out)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})

	if err := os.MkdirAll("config", 0o755); err != nil {
		t.Fatal(err)
	}
	data := `
http:
  port: 9090
database:
  addrs: ["localhost:6379"]
embedding:
  provider: openai
  model: text-embedding-3-small
assistant:
  model: gpt-4o
auth:
  allow_anonymous: true
`
	if err := os.WriteFile(filepath.Join("config", "test.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Assistant.MaxToolRounds != 5 {
		t.Errorf("defaults not applied: MaxToolRounds = %d", cfg.Assistant.MaxToolRounds)
	}
}
