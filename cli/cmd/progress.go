package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/advparse/batch"
)

const (
	progressWidth   = 40
	progressPadding = 2
)

type (
	resultMsg   batch.Result
	finishedMsg struct{}
)

// progressModel is the Bubble Tea model of the batch progress bar.
type progressModel struct {
	bar    progress.Model
	hint   lipgloss.Style
	fail   lipgloss.Style
	last   string
	total  int
	done   int
	failed int
}

func newProgressModel(w io.Writer, total int) progressModel {
	r := lipgloss.NewRenderer(w)

	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
		hint:  r.NewStyle().Foreground(lipgloss.Color("8")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		total: total,
	}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.done++
		m.last = msg.File

		if msg.Err != nil {
			m.failed++
		}

	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-progressPadding*2, progressWidth*2), progressPadding)

	case finishedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m progressModel) View() string {
	counts := m.hint.Render(fmt.Sprintf("%d/%d files", m.done, m.total))
	if m.failed > 0 {
		counts += " " + m.fail.Render(fmt.Sprintf("%d failed", m.failed))
	}

	if m.last != "" {
		counts += " " + m.hint.Render(m.last)
	}

	return m.bar.ViewAs(m.fraction()) + "\n" + counts + "\n"
}

func (m progressModel) fraction() float64 {
	if m.total == 0 {
		return 1
	}

	return float64(m.done) / float64(m.total)
}

// progressBar renders batch progress on a terminal while a run is active.
type progressBar struct {
	program *tea.Program
	done    chan struct{}
}

func startProgress(ctx context.Context, w io.Writer, total int) *progressBar {
	b := &progressBar{
		program: tea.NewProgram(
			newProgressModel(w, total),
			tea.WithContext(ctx),
			tea.WithOutput(w),
			tea.WithInput(nil),
		),
		done: make(chan struct{}),
	}

	go func() {
		defer close(b.done)

		_, _ = b.program.Run()
	}()

	return b
}

// add records a completed file.
func (b *progressBar) add(r batch.Result) { b.program.Send(resultMsg(r)) }

// stop renders the final state and waits for the program to exit.
func (b *progressBar) stop() {
	b.program.Send(finishedMsg{})
	<-b.done
}
