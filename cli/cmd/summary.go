package cmd

import (
	"context"
	"encoding/json"
	"io"
	"strings"
)

// Summary prints the timeline summary of a script as JSON.
type Summary struct {
	Indent int `default:"2" help:"Indent width. Zero writes compact output." short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the summary command.
func (s *Summary) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stream, err := parseSource(ctx, s.Source, "summary")
	if err != nil {
		return err
	}

	return writeJSON(stdout(ctx), stream.Summary(), s.Indent)
}

// writeJSON encodes v to w without HTML escaping.
func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(v); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
