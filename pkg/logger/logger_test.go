package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFilteringAndPrintln(t *testing.T) {
	// capture output by replacing package logger
	var buf bytes.Buffer
	orig := logger
	logger = log.New(&buf, "", 0)
	defer func() { logger = orig }()

	Init("warn")
	Debugf("created session %s", "0011aabb")
	Infof("scan completed for session %s", "0011aabb")
	Warnf("upstream attempt %d failed", 1)
	Errorf("token revocation failed")

	out := buf.String()
	if strings.Contains(out, "created session") {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if strings.Contains(out, "scan completed") {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if !strings.Contains(out, "upstream attempt 1 failed") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "token revocation failed") {
		t.Fatalf("error message missing: %q", out)
	}

	// Test Println maps to info and is suppressed at warn
	buf.Reset()
	Println("sweep removed 3 sessions")
	if strings.Contains(buf.String(), "sweep removed") {
		t.Fatalf("Println should be suppressed at warn level")
	}

	// at info level Println should appear
	Init("info")
	buf.Reset()
	Println("sweep removed 3 sessions")
	if !strings.Contains(buf.String(), "sweep removed 3 sessions") {
		t.Fatalf("Println expected at info level, got: %q", buf.String())
	}
}
