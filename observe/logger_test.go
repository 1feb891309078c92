package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "dropped debug")
	logger.Info(ctx, "dropped info")
	logger.Warn(ctx, "kept warn")
	logger.Error(ctx, "kept error")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("below-level entries were written: %s", out)
	}
	if !strings.Contains(out, "kept warn") || !strings.Contains(out, "kept error") {
		t.Errorf("at-level entries missing: %s", out)
	}
}

func TestLoggerEmitsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "cache hit", F("owner", "qobuz"), F("method", "get_album"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "cache hit" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
	if entry["owner"] != "qobuz" || entry["method"] != "get_album" {
		t.Errorf("fields missing: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLoggerRedactsCredentialFields(t *testing.T) {
	secrets := []string{
		"password", "secret", "app_secret", "client_secret",
		"token", "access_token", "refresh_token", "auth_token",
		"api_key", "credential",
	}
	for _, key := range secrets {
		t.Run(key, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("info", &buf)

			logger.Info(context.Background(), "login", F(key, "super-secret-value"))

			out := buf.String()
			if strings.Contains(out, "super-secret-value") {
				t.Fatalf("%s leaked: %s", key, out)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("%s not redacted: %s", key, out)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNopLoggerWritesNothing(t *testing.T) {
	// Mostly a compile-time check that the nop logger satisfies Logger.
	logger := NopLogger()
	logger.Info(context.Background(), "discarded", F("password", "x"))
}
