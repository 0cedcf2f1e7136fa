package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerJSONCarriesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "json", Level: "debug", Service: "fpl-dashboard", Version: "dev", Output: &buf})
	logger.Debug("hello", FieldTab, "leaderboard")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if record[FieldService] != "fpl-dashboard" || record[FieldVersion] != "dev" {
		t.Fatalf("expected common attrs, got %+v", record)
	}
	if record[FieldTab] != "leaderboard" {
		t.Fatalf("expected tab attr, got %+v", record)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextLoggerRoundTrip(t *testing.T) {
	fallback := NewLogger(Config{})
	scoped := fallback.With(FieldRequestID, "abc")

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatal("expected fallback when context has no logger")
	}
	ctx := WithLogger(context.Background(), scoped)
	if got := FromContext(ctx, fallback); got != scoped {
		t.Fatal("expected scoped logger from context")
	}
	if got := WithLogger(ctx, nil); got != ctx {
		t.Fatal("expected nil logger to leave context untouched")
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "x")
	Info(nil, "x")
	Warn(nil, "x")
	Error(nil, "x", nil)
}

func TestErrorAppendsErrField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})
	Error(logger, "fetch failed", errBoom{})
	if !strings.Contains(buf.String(), "error=boom") {
		t.Fatalf("expected error field in %q", buf.String())
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
