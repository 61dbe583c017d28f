package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/advparse/log"
	"github.com/ardnew/advparse/script"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the writer for terminal decorations such as progress bars.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// parseSource parses the script at path, or stdin if path is "-".
func parseSource(ctx context.Context, path string, cmd string) (*script.Stream, error) {
	logger := log.With(slog.String("command", cmd))

	if path == stdinSource || path == "" {
		return script.ParseReader(ctx, os.Stdin,
			script.WithName("stdin"),
			script.WithLogger(logger),
		)
	}

	return script.ParseFile(ctx, path, script.WithLogger(logger))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing, creating its parent directories.
// The path "-" writes to stdout and is never closed.
func createOutput(ctx context.Context, path string) (io.WriteCloser, error) {
	if path == stdinSource || path == "" {
		return nopCloser{stdout(ctx)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	return f, nil
}

// writeOutput calls write with the output at path and closes it.
func writeOutput(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	w, err := createOutput(ctx, path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = ErrWriteOutput.Wrap(cerr).With(slog.String("path", path))
		}
	}()

	return write(w)
}

// writeDocument exports s to path in the given format, validating it
// first if verify is set.
func writeDocument(
	ctx context.Context,
	s *script.Stream,
	path string,
	format script.Format,
	indent int,
	verify bool,
) error {
	doc := s.Document()

	if verify {
		if err := doc.Validate(); err != nil {
			return ErrVerify.Wrap(err).With(slog.String("source", s.Name()))
		}
	}

	return writeOutput(ctx, path, func(w io.Writer) error {
		return doc.Write(ctx, w, format, indent)
	})
}
