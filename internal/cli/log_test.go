package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	watch := startStopwatch(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)

	watch.done("rendered", "diagram", "loop", "files", 3)

	out := buf.String()
	for _, want := range []string{"rendered", "diagram=loop", "files=3", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output %q missing %q", out, want)
		}
	}
}

func TestCtxLogger(t *testing.T) {
	var reqBuf, baseBuf bytes.Buffer
	req := newLogger(&reqBuf, log.InfoLevel).With("req", "abc")
	base := newLogger(&baseBuf, log.InfoLevel)

	if got := ctxLogger(context.Background(), base); got != base {
		t.Error("ctxLogger should fall back when no logger is attached")
	}

	ctx := withLogger(context.Background(), req)
	ctxLogger(ctx, base).Info("request failed")
	if !strings.Contains(reqBuf.String(), "req=abc") {
		t.Errorf("request logger output = %q", reqBuf.String())
	}
	if baseBuf.Len() != 0 {
		t.Errorf("fallback logger used: %q", baseBuf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("debug message missing after SetLogLevel(LogDebug)")
	}
}
