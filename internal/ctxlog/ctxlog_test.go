package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("expected the default logger for a bare context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", "text", &buf)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Debug("assembly", "nodes", 3)
	if !strings.Contains(buf.String(), "nodes=3") {
		t.Errorf("expected attached logger to receive the record, got %q", buf.String())
	}
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		message string
	}{
		{"debug", true, "visible"},
		{"info", false, "filtered"},
		{"bogus", false, "filtered"},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level, "text", &buf)
			logger.Debug(tt.message)
			if got := buf.Len() > 0; got != tt.debug {
				t.Errorf("level %s: debug emitted = %v, want %v", tt.level, got, tt.debug)
			}
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)
	logger.Info("solve done")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected json output, got %q", buf.String())
	}
}
