package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestLogger_FieldsFromArgs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).Named("adp").With("group", "home")

	logger.WarnContext(context.Background(), "skipped picks", "league_id", "L1", "skipped", 3, "error", errors.New("bad pick"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "adp" || entry.Message != "skipped picks" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	fields := entry.ContextMap()
	if fields["group"] != "home" || fields["league_id"] != "L1" || fields["skipped"] != int64(3) {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields["error"] != "bad pick" {
		t.Fatalf("error field not encoded: %+v", fields)
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("ignored")
	if logger.Named("x") == nil || logger.With("k", "v") == nil {
		t.Fatalf("nil logger should yield a nop logger")
	}
}
