package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/advparse/log"
	"github.com/ardnew/advparse/script"
)

// ParseFunc parses the file at path.
type ParseFunc func(ctx context.Context, path string) (*script.Stream, error)

// SinkFunc receives every successfully parsed stream, typically to write
// its document. An error marks the file as failed.
type SinkFunc func(ctx context.Context, s *script.Stream) error

// Coordinator parses many files concurrently with a bounded number of
// workers.
//
// A failure in one file, including a panic, is recorded in that file's
// [Result] and never affects the others.
type Coordinator struct {
	// Parse parses one file. If nil, [script.ParseFile] is used.
	Parse ParseFunc
	// Sink is called with each parsed stream. It may be nil.
	Sink SinkFunc
	// OnResult is called from a single goroutine with each result as it
	// completes.
	OnResult func(Result)
	// Logger receives per-file failures and run totals.
	Logger log.Logger
	// Workers is the number of files processed at once. Values below 1 use
	// [runtime.NumCPU].
	Workers int
}

// workers returns the effective pool size.
func (c *Coordinator) workers() int {
	if c.Workers < 1 {
		return max(runtime.NumCPU(), 1)
	}

	return c.Workers
}

func (c *Coordinator) parse(ctx context.Context, path string) (*script.Stream, error) {
	if c.Parse != nil {
		return c.Parse(ctx, path)
	}

	return script.ParseFile(ctx, path, script.WithLogger(c.Logger))
}

// Run processes files and returns a report of every file, in the order the
// files completed. Use [Report.Sort] for a stable order.
//
// If ctx is canceled, files that have not yet been started are recorded as
// failed with the context's error. Files already started run to completion.
func (c *Coordinator) Run(ctx context.Context, files []string) *Report {
	var (
		g       errgroup.Group
		results = make(chan Result)
		active  atomic.Int32
		start   = time.Now()
		report  = &Report{Workers: c.workers()}
	)

	g.SetLimit(report.Workers)

	c.Logger.DebugContext(
		ctx,
		"batch started",
		slog.Int("files", len(files)),
		slog.Int("workers", report.Workers),
	)

	go func() {
		defer close(results)

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				results <- Result{
					File: filepath.Base(path),
					Path: path,
					Err:  ErrNotStarted.Wrap(err),
				}

				continue
			}

			g.Go(func() error {
				n := active.Add(1)
				defer active.Add(-1)

				c.Logger.TraceContext(ctx, "task started",
					slog.String("file", path),
					slog.Int("active", int(n)),
				)

				results <- c.process(ctx, path)

				return nil
			})
		}

		_ = g.Wait()
	}()

	for r := range results {
		if r.Err != nil {
			c.Logger.WarnContext(ctx, "file failed", slog.Any("result", r))
		} else {
			c.Logger.DebugContext(ctx, "file parsed", slog.Any("result", r))
		}

		report.Results = append(report.Results, r)

		if c.OnResult != nil {
			c.OnResult(r)
		}
	}

	report.Elapsed = time.Since(start)

	stats := report.Stats()

	c.Logger.InfoContext(
		ctx,
		"batch complete",
		slog.Int("total", stats.Total),
		slog.Int("success", stats.Success),
		slog.Int("failed", stats.Failed),
		slog.Duration("elapsed", report.Elapsed),
	)

	return report
}

// process runs one task. A panic is recovered into a failed result that
// carries the stack trace.
func (c *Coordinator) process(ctx context.Context, path string) (r Result) {
	r.File = filepath.Base(path)
	r.Path = path

	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r.Err = ErrTaskPanic.Wrap(fmt.Errorf("%v", p))
			r.Trace = string(debug.Stack())
		}

		r.Elapsed = time.Since(start)
	}()

	s, err := c.parse(ctx, path)
	if err != nil {
		r.Err = err

		return r
	}

	if c.Sink != nil {
		if err := c.Sink(ctx, s); err != nil {
			r.Err = err

			return r
		}
	}

	sum := s.Summary()

	r.Commands = sum.TotalCommands
	r.Duration = sum.Duration
	r.Messages = len(s.ByType(script.DialogueType))

	return r
}
