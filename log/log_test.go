package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(b, &entry); err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", b, err)
	}

	return entry
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("expected caller=%v pretty=%v, got caller=%v pretty=%v",
			DefaultCaller, DefaultPretty, logger.caller, logger.pretty)
	}
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("expected logged=%v, got output %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelTrace))
		logger.Trace("test message", slog.String("key", "value"))

		entry := decodeLine(t, buf.Bytes())
		if entry["msg"] != "test message" || entry["key"] != "value" {
			t.Errorf("unexpected entry %v", entry)
		}

		if entry["level"] != "TRACE" {
			t.Errorf("expected level TRACE, got %v", entry["level"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Warn("test message", slog.String("key", "value"))

		output := buf.String()
		for _, want := range []string{`msg="test message"`, "key=value", "level=WARN"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in text output, got: %s", want, output)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithFormat(Format(9))).Error("test message")

		if buf.Len() != 0 {
			t.Errorf("expected no output for unknown format, got: %s", buf.String())
		}
	})
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("test message")

	entry := decodeLine(t, buf.Bytes())

	src, ok := entry["source"].(map[string]any)
	if !ok {
		t.Fatalf("expected source object, got %v", entry["source"])
	}

	if file, _ := src["file"].(string); filepath.Base(file) != "log_test.go" {
		t.Errorf("expected source in log_test.go, got %v", src["file"])
	}
}

func TestLogger_WithTimeLayout_None_OmitsTime(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("test")

	if _, ok := decodeLine(t, buf.Bytes())["time"]; ok {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))
	logger.With(slog.String("key", "value")).Info("with")
	logger.Info("without")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if v := decodeLine(t, lines[0])["key"]; v != "value" {
		t.Errorf("expected key=value in derived logger, got %v", v)
	}

	if _, ok := decodeLine(t, lines[1])["key"]; ok {
		t.Error("With modified the parent logger")
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("wrapped")
	base.Debug("base")

	if first.Len() != 0 {
		t.Errorf("base logger changed by Wrap: %s", first.String())
	}

	if !strings.Contains(second.String(), "wrapped") {
		t.Errorf("expected wrapped output, got: %s", second.String())
	}

	if wrapped.Format() != base.Format() {
		t.Errorf("Wrap lost format: %v != %v", wrapped.Format(), base.Format())
	}
}

func TestLogger_WithFile_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "advparse.log")

	logger := Make(nil, WithFile(path, 1, 2))
	logger.Info("to file", slog.Int("n", 1))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	entry := decodeLine(t, bytes.TrimSpace(data))
	if entry["msg"] != "to file" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("expected defaults from zero value")
	}

	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf syncBuffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			logger.With(slog.Int("id", i)).Info("concurrent message")
		})
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

// syncBuffer serializes writes from handlers that do not share a lock.
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

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(nil, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	logger := Make(nil, WithFormat(FormatText))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Disabled(b *testing.B) {
	logger := Make(nil, WithLevel(LevelError))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}
