package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewWithFileConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshgen.log")

	log, err := NewWithFileConfig("debug", DefaultFileConfig(path), false)
	if err != nil {
		t.Fatalf("NewWithFileConfig() error = %v", err)
	}
	log.Info("hello from test")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got %q", string(data))
	}
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	log, err := NewWithFileConfig("info", FileConfig{}, false)
	if err != nil {
		t.Fatalf("NewWithFileConfig() error = %v", err)
	}
	// Must not panic or write anywhere.
	log.Info("discarded")
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/x.log")
	if cfg.Path != "/tmp/x.log" {
		t.Errorf("Path = %q, want /tmp/x.log", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
