package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardnew/advparse/batch"
	"github.com/ardnew/advparse/log"
	"github.com/ardnew/advparse/script"
)

// Batch exports every script found under one or more directories and
// writes a report of the run.
//
// A file that fails to parse is listed in the report and does not fail
// the command.
type Batch struct {
	Output    string `help:"Output directory for documents and reports." required:"" short:"o" type:"path"`
	Workers   int    `default:"0"     help:"Files parsed at once. Zero uses the number of CPUs." short:"w"`
	Glob      string `default:"*.txt" help:"File name pattern of scripts."`
	Recursive bool   `help:"Search subdirectories."                                            short:"r"`
	Format    string `default:"json"  enum:"json,yaml"                                        help:"Document format." short:"f"`
	Indent    int    `default:"2"     help:"Indent width. Zero writes compact output."          short:"i"`
	Progress  bool   `help:"Show a progress bar on stderr."`
	Verify    bool   `help:"Validate each document against the export schema before writing."`

	Dirs []string `arg:"" help:"Directories or files to parse. Entries of the ADVPARSE_PATH environment variable are appended." name:"dir" optional:"" type:"path"`
}

// Run executes the batch command.
func (b *Batch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := script.ParseFormat(b.Format)
	if err != nil {
		return err
	}

	roots := searchPath(b.Dirs, os.Getenv(PathEnv))

	files, err := batch.Discover(roots, b.Glob, b.Recursive)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.Output, 0o755); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("dir", b.Output))
	}

	docs := b.documentPaths(files, format)

	c := batch.Coordinator{
		Workers: b.Workers,
		Logger:  log.With(slog.String("command", "batch")),
		Sink: func(ctx context.Context, s *script.Stream) error {
			path, ok := docs[s.Name()]
			if !ok {
				path = b.documentPath(s.Name(), format)
			}

			return writeDocument(ctx, s, path, format, b.Indent, b.Verify)
		},
	}

	var bar *progressBar
	if b.Progress {
		bar = startProgress(ctx, stderr(ctx), len(files))
		c.OnResult = bar.add
	}

	report := c.Run(ctx, files)

	if bar != nil {
		bar.stop()
	}

	if err := report.WriteFiles(b.Output); err != nil {
		return err
	}

	return writeReportSummary(stdout(ctx), report, b.Output)
}

// documentPath returns the output path of the document for the script at
// path: its base name with the extension of format.
func (b *Batch) documentPath(path string, format script.Format) string {
	return filepath.Join(b.Output, stem(path)+format.Ext())
}

// documentPaths maps every file to a distinct document path. A file whose
// base name is shared with another file is named after its whole path, and
// a number is appended to any name still taken.
func (b *Batch) documentPaths(files []string, format script.Format) map[string]string {
	count := make(map[string]int, len(files))
	for _, f := range files {
		count[stem(f)]++
	}

	var (
		paths = make(map[string]string, len(files))
		taken = make(map[string]bool, len(files))
	)

	for _, f := range files {
		name := stem(f)
		if count[name] > 1 {
			name = flatStem(f)
		}

		for base, n := name, 2; taken[name]; n++ {
			name = base + "-" + strconv.Itoa(n)
		}

		taken[name] = true
		paths[f] = filepath.Join(b.Output, name+format.Ext())
	}

	return paths
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// flatStem returns path without its extension, with separators and volume
// colons replaced by underscores.
func flatStem(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimSuffix(path, filepath.Ext(path))

	return strings.Trim(strings.NewReplacer("/", "_", ":", "_").Replace(path), "_.")
}
