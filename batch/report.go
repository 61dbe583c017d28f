package batch

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ReportJSON is the file name of the machine-readable report.
	ReportJSON = "_batch_report.json"
	// ReportText is the file name of the human-readable report.
	ReportText = "_batch_report.txt"

	// maxListedErrors bounds the errors listed in the text report.
	maxListedErrors = 10
)

// Report collects the results of a [Coordinator.Run].
type Report struct {
	Results []Result
	Elapsed time.Duration
	Workers int
}

// FileError names a file that failed and why.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Stats aggregates a [Report]. Totals and averages count successful files
// only.
type Stats struct {
	Errors          []FileError `json:"errors"`
	Total           int         `json:"total"`
	Success         int         `json:"success"`
	Failed          int         `json:"failed"`
	TotalCommands   int         `json:"total_commands"`
	TotalMessages   int         `json:"total_messages"`
	SuccessRate     float64     `json:"success_rate"`
	TotalDuration   float64     `json:"total_duration"`
	AverageCommands float64     `json:"average_commands"`
	AverageDuration float64     `json:"average_duration"`
}

// Sort orders the results by file name, then by path.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Results, func(a, b Result) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}

		return strings.Compare(a.Path, b.Path)
	})
}

// Stats computes the aggregate statistics of the report. Errors are listed
// in result order.
func (r *Report) Stats() Stats {
	s := Stats{
		Errors: []FileError{},
		Total:  len(r.Results),
	}

	for _, res := range r.Results {
		if !res.Success() {
			s.Failed++
			s.Errors = append(s.Errors, FileError{File: res.File, Error: res.Err.Error()})

			continue
		}

		s.Success++
		s.TotalCommands += res.Commands
		s.TotalMessages += res.Messages
		s.TotalDuration += res.Duration
	}

	if s.Total > 0 {
		s.SuccessRate = float64(s.Success) / float64(s.Total) * 100
	}

	if s.Success > 0 {
		s.AverageCommands = float64(s.TotalCommands) / float64(s.Success)
		s.AverageDuration = s.TotalDuration / float64(s.Success)
	}

	return s
}

// WriteJSON writes the statistics and every result as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	results := r.Results
	if results == nil {
		results = []Result{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(struct {
		Statistics Stats    `json:"statistics"`
		Files      []Result `json:"files"`
	}{
		Statistics: r.Stats(),
		Files:      results,
	})
	if err != nil {
		return ErrWriteReport.Wrap(err)
	}

	return nil
}

// WriteText writes a human-readable summary listing at most the first ten
// errors.
func (r *Report) WriteText(w io.Writer) error {
	var (
		s    = r.Stats()
		p    = message.NewPrinter(language.English)
		rule = strings.Repeat("=", 60)
		sb   strings.Builder
	)

	section := func(title string) {
		p.Fprintf(&sb, "%s\n%s\n%s\n", rule, title, rule)
	}

	section("Batch parse report")
	p.Fprintf(&sb, "\nTotal files: %d\n", s.Total)
	p.Fprintf(&sb, "Succeeded: %d\n", s.Success)
	p.Fprintf(&sb, "Failed: %d\n", s.Failed)
	p.Fprintf(&sb, "Success rate: %.2f%%\n\n", s.SuccessRate)

	if len(s.Errors) > 0 {
		section("Errors")

		for _, e := range s.Errors[:min(len(s.Errors), maxListedErrors)] {
			p.Fprintf(&sb, "\nFile: %s\nError: %s\n", e.File, e.Error)
		}

		if n := len(s.Errors) - maxListedErrors; n > 0 {
			p.Fprintf(&sb, "\n... and %d more\n", n)
		}

		sb.WriteString("\n")
	}

	section("Statistics")
	p.Fprintf(&sb, "Total commands: %d\n", s.TotalCommands)
	p.Fprintf(&sb, "Total duration: %.2f s (%.2f min)\n", s.TotalDuration, s.TotalDuration/60)
	p.Fprintf(&sb, "Total messages: %d\n", s.TotalMessages)

	if s.Success > 0 {
		p.Fprintf(&sb, "Average commands per file: %.1f\n", s.AverageCommands)
		p.Fprintf(&sb, "Average duration per file: %.1f s\n", s.AverageDuration)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return ErrWriteReport.Wrap(err)
	}

	return nil
}

// WriteFiles sorts the report and writes [ReportJSON] and [ReportText]
// into dir.
func (r *Report) WriteFiles(dir string) error {
	r.Sort()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ErrWriteReport.Wrap(err).With(slog.String("dir", dir))
	}

	for name, write := range map[string]func(io.Writer) error{
		ReportJSON: r.WriteJSON,
		ReportText: r.WriteText,
	} {
		if err := writeFile(filepath.Join(dir, name), write); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return ErrWriteReport.Wrap(err).With(slog.String("path", path))
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ErrWriteReport.Wrap(cerr).With(slog.String("path", path))
		}
	}()

	return write(f)
}
