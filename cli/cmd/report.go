package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ardnew/advparse/batch"
)

// writeReportSummary prints a boxed summary of a batch run to w.
func writeReportSummary(w io.Writer, r *batch.Report, dir string) error {
	var (
		s     = r.Stats()
		p     = message.NewPrinter(language.English)
		rend  = lipgloss.NewRenderer(w)
		label = rend.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
		good  = rend.NewStyle().Foreground(lipgloss.Color("2"))
		bad   = rend.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		box   = rend.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	)

	failed := p.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = bad.Render(failed)
	}

	row := func(name string, values ...string) string {
		return label.Render(name) + strings.Join(values, "  ")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		row("Files",
			p.Sprintf("%d total", s.Total),
			good.Render(p.Sprintf("%d parsed", s.Success)),
			failed,
			p.Sprintf("(%.2f%%)", s.SuccessRate),
		),
		row("Commands", p.Sprintf("%d", s.TotalCommands), p.Sprintf("%d messages", s.TotalMessages)),
		row("Duration", p.Sprintf("%.2f s", s.TotalDuration)),
		row("Elapsed", p.Sprintf("%v with %d workers", r.Elapsed.Round(time.Millisecond), r.Workers)),
		row("Output", dir),
	)

	if _, err := io.WriteString(w, box.Render(body)+"\n"); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
