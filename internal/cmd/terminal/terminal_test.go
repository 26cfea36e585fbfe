package terminal

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("terminal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected blank db path, got %q", cfg.DBPath)
	}
	if cfg.ChatSeed != 0 {
		t.Fatalf("expected zero chat seed, got %d", cfg.ChatSeed)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("MIRAGEOS_TERMINAL_HTTP_ADDR", "env-addr")
	t.Setenv("MIRAGEOS_DB_PATH", "env.db")
	t.Setenv("MIRAGEOS_CHAT_SEED", "42")

	fs := flag.NewFlagSet("terminal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "env-addr" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.ChatSeed != 42 {
		t.Fatalf("expected env chat seed, got %d", cfg.ChatSeed)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	t.Setenv("MIRAGEOS_TERMINAL_HTTP_ADDR", "env-addr")

	fs := flag.NewFlagSet("terminal", flag.ContinueOnError)
	args := []string{
		"-http-addr", "flag-addr",
		"-db-path", "flag.db",
		"-chat-seed", "7",
	}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-addr" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.ChatSeed != 7 {
		t.Fatalf("expected flag chat seed, got %d", cfg.ChatSeed)
	}
}
