package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"SQUAD_SCENARIO", "SQUAD_LOCALE", "SQUAD_LOG_LEVEL", "SQUAD_SEED", "SQUAD_LOG_DEV"} {
		// Registers the variable to be restored after the test.
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "en-US" || cfg.LogLevel != "info" || cfg.Seed != 0 || cfg.LogDev {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SQUAD_SCENARIO", "scenarios/village.yaml")
	t.Setenv("SQUAD_LOCALE", "de-DE")
	t.Setenv("SQUAD_LOS_DB", "/tmp/los.db")
	t.Setenv("SQUAD_LOG_DEV", "true")
	t.Setenv("SQUAD_SEED", "42")
	t.Setenv("SQUAD_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario != "scenarios/village.yaml" || cfg.Locale != "de-DE" || cfg.LOSDB != "/tmp/los.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.LogDev || cfg.Seed != 42 || cfg.OTLPEndpoint != "http://localhost:4318" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SQUAD_SEED", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
