package logger

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"loud", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestProgressf_DisabledByDefault(t *testing.T) {
	log := NewLogger("info")

	var buf bytes.Buffer
	log.progressOut = &buf

	log.Progressf("🚀 starting")

	if buf.Len() != 0 {
		t.Errorf("progress output before enabling: %q", buf.String())
	}
}

func TestProgressf_Enabled(t *testing.T) {
	log := NewLogger("info")

	var buf bytes.Buffer
	log.progressOut = &buf

	log.EnableProgress()
	log.Progressf("processed %d crops", 14)

	if got := buf.String(); got != "processed 14 crops\n" {
		t.Errorf("progress line = %q", got)
	}
}

func TestWith_KeepsProgressSettings(t *testing.T) {
	log := NewLogger("info")

	var buf bytes.Buffer
	log.progressOut = &buf
	log.EnableProgress()

	child := log.With("crop", "onion")
	child.Progressf("reconciled")

	if buf.Len() == 0 {
		t.Error("child logger lost the parent's progress settings")
	}
}
