package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/advparse/log"
	"github.com/ardnew/advparse/script"
)

// Parse exports one script as a document of commands and summary.
type Parse struct {
	Output string `default:"-"    help:"Output file or '-' for stdout."                short:"o" type:"path"`
	Format string `default:"json" enum:"json,yaml"                                    help:"Output format." short:"f"`
	Indent int    `default:"2"    help:"Indent width. Zero writes compact output."   short:"i"`
	Verify bool   `help:"Validate the document against the export schema before writing."`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := script.ParseFormat(p.Format)
	if err != nil {
		return err
	}

	s, err := parseSource(ctx, p.Source, "parse")
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "writing document",
		slog.String("source", s.Name()),
		slog.String("output", p.Output),
		slog.String("format", format.String()),
		slog.Int("commands", s.Len()),
	)

	return writeDocument(ctx, s, p.Output, format, p.Indent, p.Verify)
}
