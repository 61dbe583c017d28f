package batch

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Result is the outcome of processing one file.
type Result struct {
	// Err is nil if the file was processed successfully.
	Err error
	// File is the base name of the file.
	File string
	// Path is the path the file was read from.
	Path string
	// Trace is the goroutine stack of a task that panicked.
	Trace string
	// Commands is the number of commands parsed.
	Commands int
	// Messages is the number of dialogue commands parsed.
	Messages int
	// Duration is the timeline duration of the file in seconds.
	Duration float64
	// Elapsed is the time spent processing the file.
	Elapsed time.Duration
}

// Success reports whether the file was processed without error.
func (r Result) Success() bool { return r.Err == nil }

// MarshalJSON implements json.Marshaler.
//
// A successful result encodes its counts; a failed result encodes its
// error message and, if the task panicked, the stack trace.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success() {
		return json.Marshal(struct {
			File     string  `json:"file"`
			Commands int     `json:"commands"`
			Duration float64 `json:"duration"`
			Messages int     `json:"messages"`
			Success  bool    `json:"success"`
		}{
			File:     r.File,
			Commands: r.Commands,
			Duration: r.Duration,
			Messages: r.Messages,
			Success:  true,
		})
	}

	return json.Marshal(struct {
		File      string `json:"file"`
		Error     string `json:"error"`
		Traceback string `json:"traceback,omitempty"`
		Success   bool   `json:"success"`
	}{
		File:      r.File,
		Error:     r.Err.Error(),
		Traceback: r.Trace,
	})
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("file", r.Path),
		slog.Duration("elapsed", r.Elapsed),
	}

	if r.Err != nil {
		return slog.GroupValue(append(attrs, slog.Any("error", r.Err))...)
	}

	return slog.GroupValue(append(attrs,
		slog.Int("commands", r.Commands),
		slog.Int("messages", r.Messages),
		slog.Float64("duration", r.Duration),
	)...)
}
