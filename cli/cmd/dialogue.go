package cmd

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/advparse/script"
)

// Dialogue prints the dialogue lines of a script in order.
type Dialogue struct {
	Limit  int    `default:"0"    help:"Print at most this many lines. Zero prints all." short:"n"`
	Format string `default:"text" enum:"text,json"                                      help:"Output format." short:"f"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the dialogue command.
func (d *Dialogue) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := parseSource(ctx, d.Source, "dialogue")
	if err != nil {
		return err
	}

	lines := s.Dialogue()
	if d.Limit > 0 && d.Limit < len(lines) {
		lines = lines[:d.Limit]
	}

	if d.Format == "json" {
		return writeJSON(stdout(ctx), lines, 2)
	}

	return writeDialogue(stdout(ctx), lines)
}

// writeDialogue prints one line per entry as "[time] name: text". Untimed
// lines show "-" and unnamed lines omit the name.
func writeDialogue(w io.Writer, lines []script.DialogueLine) error {
	var (
		r    = lipgloss.NewRenderer(w)
		when = r.NewStyle().Foreground(lipgloss.Color("8"))
		name = r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
		se   = r.NewStyle().Foreground(lipgloss.Color("5"))
		sb   strings.Builder
	)

	for _, l := range lines {
		t := "-"
		if l.Time != nil {
			t = strconv.FormatFloat(*l.Time, 'f', 2, 64)
		}

		sb.WriteString(when.Render("[" + t + "]"))
		sb.WriteByte(' ')

		if l.Name != "" {
			sb.WriteString(name.Render(l.Name))
			sb.WriteString(": ")
		}

		sb.WriteString(l.Text)

		if l.SoundEffect != "" {
			sb.WriteByte(' ')
			sb.WriteString(se.Render("(se " + l.SoundEffect + ")"))
		}

		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
