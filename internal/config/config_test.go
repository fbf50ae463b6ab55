package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.LogLevel != "info" || cfg.Server.Addr != ":8080" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Classify.TimeoutSeconds != 30 || cfg.Classify.BatchParallelism != 4 || cfg.Classify.TechnicalAgeHours != 24 {
		t.Fatalf("classify defaults: %+v", cfg.Classify)
	}
	want := []string{"security", "legal", "churn", "enterprise", "duration"}
	if len(cfg.Rules.TargetOrder) != len(want) {
		t.Fatalf("target order: %v", cfg.Rules.TargetOrder)
	}
	for i := range want {
		if cfg.Rules.TargetOrder[i] != want[i] {
			t.Fatalf("target order: %v", cfg.Rules.TargetOrder)
		}
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[app]
log_level = "debug"

[server]
addr = ":9999"

[classify]
timeout_seconds = 10
batch_parallelism = 1

[rules]
target_order = ["enterprise", "security"]

[[ai.models]]
id = "m1"
provider = "openai"
enabled = true
api_url = "http://localhost:1234/v1"
api_key = "k"
model = "test-model"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Classify.TimeoutSeconds != 10 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.AI.Models) != 1 || cfg.AI.Models[0].ID != "m1" {
		t.Fatalf("models = %+v", cfg.AI.Models)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown trigger", "[rules]\ntarget_order = [\"weather\"]\n"},
		{"duplicate trigger", "[rules]\ntarget_order = [\"security\", \"security\"]\n"},
		{"model without id", "[[ai.models]]\nprovider = \"openai\"\n"},
		{"unsupported provider", "[[ai.models]]\nid = \"x\"\nprovider = \"carrier-pigeon\"\n"},
		{"enabled model without name", "[[ai.models]]\nid = \"x\"\nprovider = \"openai\"\nenabled = true\n"},
		{"bad toml", "not toml at all ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
