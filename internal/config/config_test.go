package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8173" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Balance != DefaultBalance() {
		t.Fatalf("balance = %+v, want defaults", cfg.Balance)
	}
}

func TestLoad_MissingFileHonorsDifficultyEnv(t *testing.T) {
	t.Setenv("LEVELUP_DIFFICULTY", "casual")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Balance != CasualBalance() {
		t.Fatalf("balance = %+v, want casual preset", cfg.Balance)
	}
	if cfg.Balance.QuestBasePenalty != 10 {
		t.Fatalf("casual penalty = %d, want 10", cfg.Balance.QuestBasePenalty)
	}
}

func TestLoad_FileWithDifficultyAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelup.yml")
	doc := "difficulty: hard\nserver:\n  addr: \":9000\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LEVELUP_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Balance != HardBalance() {
		t.Fatalf("balance = %+v, want hard preset", cfg.Balance)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("addr = %q, want env override", cfg.Server.Addr)
	}
}
