package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info record emitted at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Fatal("warn record missing")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("chatty"); got != slog.LevelInfo {
		t.Fatalf("parseLevel = %v, want info", got)
	}
}
