package logctx

import (
	"bytes"
	"context"
	"csvcot/internal/global"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogEvent(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	ctx := New(context.Background(), global.NSTest, 2, done)

	logger := GetLogger(ctx)
	if logger == nil {
		t.Fatalf("expected logger creation, got nil logger")
	}

	tests := []struct {
		name          string
		logLevel      int
		eventLevel    int
		severity      string
		message       string
		vars          []any
		expectEvents  int
		expectMessage string
	}{
		{
			name:          "event level <= print level is logged",
			logLevel:      2,
			eventLevel:    1,
			severity:      global.InfoLog,
			message:       "tailer started",
			expectEvents:  1,
			expectMessage: "tailer started",
		},
		{
			name:         "event level > print level is dropped",
			logLevel:     1,
			eventLevel:   3,
			severity:     global.InfoLog,
			message:      "should not appear",
			expectEvents: 0,
		},
		{
			name:          "error severity bypasses level filtering",
			logLevel:      0,
			eventLevel:    5,
			severity:      global.ErrorLog,
			message:       "socket closed",
			expectEvents:  1,
			expectMessage: "socket closed",
		},
		{
			name:          "formatted message with vars",
			logLevel:      3,
			eventLevel:    2,
			severity:      global.InfoLog,
			message:       "line=%d",
			vars:          []any{42},
			expectEvents:  1,
			expectMessage: "line=42",
		},
		{
			name:          "no formatting when no format verbs",
			logLevel:      3,
			eventLevel:    2,
			severity:      global.InfoLog,
			message:       "plain message",
			vars:          []any{123},
			expectEvents:  1,
			expectMessage: "plain message",
		},
		{
			name:          "format verb but no variables",
			logLevel:      3,
			eventLevel:    2,
			severity:      global.WarnLog,
			message:       "interval %d",
			expectEvents:  1,
			expectMessage: "interval %d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.mutex.Lock()
			logger.queue = []Event{}
			logger.mutex.Unlock()

			SetLogLevel(ctx, tt.logLevel)
			LogEvent(ctx, tt.eventLevel, tt.severity, tt.message, tt.vars...)

			logger.mutex.Lock()
			defer logger.mutex.Unlock()

			if got := len(logger.queue); got != tt.expectEvents {
				t.Fatalf("expected %d events, got %d", tt.expectEvents, got)
			}
			if tt.expectEvents == 0 {
				return
			}

			ev := logger.queue[0]
			if ev.Severity != tt.severity {
				t.Fatalf("severity mismatch: got %q want %q", ev.Severity, tt.severity)
			}
			if ev.Message != tt.expectMessage {
				t.Fatalf("message mismatch: got %q want %q", ev.Message, tt.expectMessage)
			}
			if time.Since(ev.Timestamp) > time.Second {
				t.Fatalf("event timestamp too old: %v", ev.Timestamp)
			}
		})
	}
}

func TestLogEventWithoutLogger(t *testing.T) {
	// Must not panic
	LogEvent(context.Background(), global.VerbosityStandard, global.ErrorLog, "dropped %d", 1)
}

func TestCtxTags(t *testing.T) {
	ctx := context.Background()
	ctx = AppendCtxTag(ctx, global.NSPlayback)
	child := AppendCtxTag(ctx, global.NSTailer)

	if got := strings.Join(GetTagList(child), "/"); got != "Playback/Tailer" {
		t.Fatalf("unexpected child tags %q", got)
	}
	if got := strings.Join(GetTagList(ctx), "/"); got != "Playback" {
		t.Fatalf("parent tags mutated: %q", got)
	}

	parent := RemoveLastCtxTag(child)
	if got := strings.Join(GetTagList(parent), "/"); got != "Playback" {
		t.Fatalf("unexpected tags after removal %q", got)
	}
	if got := GetTagList(RemoveLastCtxTag(context.Background())); len(got) != 0 {
		t.Fatalf("expected empty tag list, got %v", got)
	}

	multi := AppendCtxTag(ctx, global.NSTailer, "targets.csv")
	if got := strings.Join(GetTagList(multi), "/"); got != "Playback/Tailer/targets.csv" {
		t.Fatalf("unexpected tags from multiple append %q", got)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatcherWritesAndDrains(t *testing.T) {
	done := make(chan struct{})
	logger := NewLogger(global.NSTest, global.VerbosityStandard, done)
	ctx := AppendCtxTag(WithLogger(context.Background(), logger), global.NSConsole)

	out := &syncBuffer{}
	StartWatcher(logger, out)

	LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "jump received\n")
	LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "invalid speed value: '%s'", "abc")

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "invalid speed") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	close(done)
	logger.Wake()
	logger.Wait()

	got := out.String()
	if !strings.Contains(got, "[Console] [Info] jump received\n") {
		t.Errorf("missing info line in output %q", got)
	}
	if !strings.Contains(got, "[Console] [Error] invalid speed value: 'abc'\n") {
		t.Errorf("missing error line (newline should be appended) in output %q", got)
	}
}

func TestGetFormattedLogLines_ChronologicalBatching(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	l := NewLogger(global.NSTest, 5, done)
	base := time.Now()

	l.mutex.Lock()
	l.queue = []Event{
		{Timestamp: base.Add(3 * time.Second), Severity: global.InfoLog, Message: "third"},
		{Timestamp: time.Time{}, Severity: global.InfoLog, Message: "zero"},
		{Timestamp: base.Add(1 * time.Second), Severity: global.InfoLog, Message: "first"},
		{Timestamp: base.Add(2 * time.Second), Severity: global.InfoLog, Message: "second"},
	}
	l.mutex.Unlock()

	lines := l.GetFormattedLogLines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(lines))
	}

	for i, want := range []string{"first", "second", "third", "zero"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d ordering mismatch: got %q, want message containing %q", i, lines[i], want)
		}
		if !strings.HasSuffix(lines[i], "\n") {
			t.Fatalf("line %d missing trailing newline: %q", i, lines[i])
		}
	}
}
