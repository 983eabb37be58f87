// Package ui shows word cloud generation progress in the terminal
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/lyricloud/internal/cli"
	"github.com/linuxmatters/lyricloud/internal/wordcloud"
)

// StageMsg reports the stage Generate has reached
type StageMsg struct {
	Stage wordcloud.Stage
}

// DoneMsg ends the UI with a summary
type DoneMsg struct {
	Output string
	Bytes  int
	Words  int
	Font   string
	Width  int
	Height int
}

// ErrMsg ends the UI after a failure
type ErrMsg struct {
	Err error
}

type quitMsg struct{}

type generateModel struct {
	progress        progress.Model
	stage           wordcloud.Stage
	seen            []wordcloud.Stage
	done            *DoneMsg
	err             error
	cancelled       bool
	startTime       time.Time
	elapsed         time.Duration
	completionDelay time.Duration
}

// NewGenerateModel returns the bubbletea model for a single cloud
func NewGenerateModel() tea.Model {
	p := progress.New(
		progress.WithGradient("#1DB954", "#B3FFCB"),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return &generateModel{
		progress:        p,
		startTime:       time.Now(),
		completionDelay: 750 * time.Millisecond,
	}
}

func (m *generateModel) Init() tea.Cmd {
	return nil
}

func (m *generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(msg.Width-20, 50))
		return m, nil

	case StageMsg:
		m.stage = msg.Stage
		m.seen = append(m.seen, msg.Stage)
		return m, nil

	case DoneMsg:
		m.done = &msg
		m.stage = wordcloud.StageDone
		m.elapsed = time.Since(m.startTime)
		return m, m.quitAfterDelay()

	case ErrMsg:
		m.err = msg.Err
		m.elapsed = time.Since(m.startTime)
		return m, tea.Quit

	case quitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.done != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			m.elapsed = time.Since(m.startTime)
			return m, tea.Quit
		}
	}
	return m, nil
}

// Cancelled reports whether the user quit before generation finished
func Cancelled(m tea.Model) bool {
	gm, ok := m.(*generateModel)
	return ok && gm.cancelled
}

func (m *generateModel) quitAfterDelay() tea.Cmd {
	return tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
		return quitMsg{}
	})
}

func (m *generateModel) View() string {
	switch {
	case m.err != nil:
		return m.renderError()
	case m.cancelled:
		return cli.WarningStyle.Render("⚠ Cancelled") + "\n"
	case m.done != nil:
		return m.renderComplete()
	default:
		return m.renderProgress()
	}
}

func (m *generateModel) renderProgress() string {
	var s strings.Builder
	s.WriteString(cli.TitleStyle.Render(cli.AppName))
	s.WriteString("\n")

	s.WriteString(m.progress.ViewAs(m.stage.Fraction()))
	s.WriteString(fmt.Sprintf("  %3.0f%%\n\n", m.stage.Fraction()*100))

	for _, st := range m.seen {
		if st == m.stage {
			s.WriteString(lipgloss.NewStyle().Bold(true).Render("› " + st.String()))
		} else {
			s.WriteString(lipgloss.NewStyle().Faint(true).Render("✓ " + st.String()))
		}
		s.WriteString("\n")
	}

	return cli.BoxStyle.Render(strings.TrimRight(s.String(), "\n"))
}

func (m *generateModel) renderComplete() string {
	var s strings.Builder
	s.WriteString(cli.SuccessStyle.Render("✓ Word cloud ready"))
	s.WriteString("\n\n")

	row := func(k, v string) {
		s.WriteString(cli.KeyStyle.Render(fmt.Sprintf("%-8s", k)))
		s.WriteString(cli.ValueStyle.Render(v))
		s.WriteString("\n")
	}
	row("Output", m.done.Output)
	row("Size", fmt.Sprintf("%dx%d, %s", m.done.Width, m.done.Height, cli.FormatBytes(int64(m.done.Bytes))))
	row("Words", fmt.Sprintf("%d", m.done.Words))
	row("Font", m.done.Font)
	row("Time", cli.FormatDuration(m.elapsed))

	return cli.BoxStyle.Render(strings.TrimRight(s.String(), "\n")) + "\n"
}

func (m *generateModel) renderError() string {
	return cli.ErrorStyle.Render("✗ Generation failed") + "\n"
}
