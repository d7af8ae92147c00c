package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.SetDefault("path", "/tmp/journal")
	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("fromViper: %v", err)
	}
	if cfg.BasePath() != "/tmp/journal" {
		t.Fatalf("expected base path /tmp/journal, got %q", cfg.BasePath())
	}
	if cfg.LockerCodec != CodecPlain {
		t.Fatalf("expected plain codec, got %q", cfg.LockerCodec)
	}
	if cfg.AutosaveQuiet != DefaultQuietPeriod {
		t.Fatalf("expected default quiet period, got %v", cfg.AutosaveQuiet)
	}
}

func TestFromViperRejectsUnknownCodec(t *testing.T) {
	v := viper.New()
	v.Set("locker.codec", "rot13")
	if _, err := fromViper(v); err == nil {
		t.Fatalf("expected error for unknown codec")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "path: " + filepath.Join(dir, "db") + "\nlocker:\n  codec: bcrypt\nautosave:\n  quiet: 5s\n"
	if err := os.WriteFile(filepath.Join(dir, ".mindful.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MINDFUL_CONFIG_PATH", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != filepath.Join(dir, "db") {
		t.Fatalf("unexpected path %q", cfg.Path)
	}
	if cfg.LockerCodec != CodecBcrypt {
		t.Fatalf("expected bcrypt codec, got %q", cfg.LockerCodec)
	}
	if cfg.AutosaveQuiet != 5*time.Second {
		t.Fatalf("expected 5s quiet period, got %v", cfg.AutosaveQuiet)
	}
}
