package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "db_path: /tmp/pt.db\nlog_level: debug\nbell: false\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/pt.db" {
		t.Fatalf("db_path = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
	if cfg.Bell {
		t.Fatal("bell should be false")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("unset log_format should keep default, got %q", cfg.LogFormat)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"bad yaml", "db_path: [unclosed\n"},
		{"bad level", "log_level: loud\n"},
		{"bad format", "log_format: xml\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		os.WriteFile(path, []byte(tt.yml), 0o644)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Config{DBPath: "a.db", LogLevel: "warn", LogFile: "-", LogFormat: "json", Bell: true}

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolve(t *testing.T) {
	cfg, err := Default().Resolve()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join("pixeltrainer", "pixeltrainer.db")) {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if !strings.HasSuffix(cfg.LogFile, "pixeltrainer.log") {
		t.Fatalf("log file = %q", cfg.LogFile)
	}

	explicit := Config{DBPath: "x.db", LogFile: "-"}
	got, _ := explicit.Resolve()
	if got != explicit {
		t.Fatalf("explicit paths changed: %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pt.log")
	log, closer, err := NewLogger(Config{LogFile: path, LogLevel: "info"})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("hello", slog.String("habit_id", "abc"))
	closer.Close()

	data, _ := os.ReadFile(path)
	out := string(data)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "habit_id=abc") {
		t.Fatalf("log output missing record: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug record should be filtered at info level")
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, Config{LogFormat: "json"}).Info("ok")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
}

func TestNewLoggerStderr(t *testing.T) {
	_, closer, err := NewLogger(Config{LogFile: "-"})
	if err != nil {
		t.Fatal(err)
	}
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
}
