// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("file parsed", slog.String("path", path))
//	logger.Error("batch failed", slog.Any("error", err))
//
// The zero [Logger] discards every message, so components may hold one
// without checking whether logging was configured.
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [WithFile] sends output to a size-rotated log file instead of a writer.
//
// # Adding Attributes
//
// [Logger.With] returns a logger that includes the given attributes in every
// message:
//
//	logger = logger.With(slog.String("source", name))
//	logger.Debug("span dropped") // includes source=<name>
//
// # Default Logger
//
// The package-level functions log through a default logger that writes to
// [os.Stderr]. [Config] replaces its configuration.
//
// Context-unaware functions use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Levels
//
// The package supports five levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. With [WithPretty] enabled, output is styled for a terminal
// and falls back to plain text when the writer is not one.
package log
