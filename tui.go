package csfix

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	rewrittenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

type tickMsg time.Time

type progressMsg struct {
	done  int
	total int
	path  string
}

type doneMsg struct {
	summary Summary
	err     error
}

type progressModel struct {
	frame    int
	done     int
	total    int
	path     string
	finished bool
	summary  Summary
	err      error
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m progressModel) Init() tea.Cmd { return tick() }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()
	case progressMsg:
		m.done, m.total, m.path = msg.done, msg.total, msg.path
	case doneMsg:
		m.finished = true
		m.summary = msg.summary
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}

	frame := spinnerStyle.Render(spinnerFrames[m.frame])
	if m.total == 0 {
		return fmt.Sprintf("%s Processing...", frame)
	}
	return fmt.Sprintf("%s Processing %s %d/%d", frame, m.path, m.done, m.total)
}

type TUI struct {
	app         *App
	noAnimation bool
}

func NewTUI(app *App, noAnimation bool) *TUI {
	return &TUI{app: app, noAnimation: noAnimation}
}

func (t *TUI) Run() error {
	if t.noAnimation {
		return t.runPlain()
	}

	p := tea.NewProgram(progressModel{})
	t.app.SetProgressCallback(func(done, total int, path string) {
		p.Send(progressMsg{done: done, total: total, path: path})
	})

	go func() {
		summary, err := t.app.Execute()
		p.Send(doneMsg{summary: summary, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(progressModel)
	if !m.finished {
		return fmt.Errorf("interrupted")
	}
	if m.err != nil {
		return m.err
	}

	fmt.Print(FormatSummary(m.summary))
	return nil
}

func (t *TUI) runPlain() error {
	t.app.SetProgressCallback(func(done, total int, path string) {
		fmt.Printf("Processing %s (%d/%d)\n", path, done, total)
	})

	summary, err := t.app.Execute()
	if err != nil {
		return err
	}

	fmt.Print(FormatSummary(summary))
	return nil
}

func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n")
		return b.String()
	}

	counts := fmt.Sprintf("%d rewritten, %d unchanged, %d failed",
		len(s.Rewritten), len(s.Unchanged), len(s.Failed))
	b.WriteString(headerStyle.Render(counts) + "\n")

	renderList := func(title string, style lipgloss.Style, list []string) {
		if len(list) == 0 {
			return
		}
		b.WriteString(style.Render(title) + "\n")
		for _, f := range list {
			b.WriteString(fmt.Sprintf("  %s\n", f))
		}
	}

	renderList("Rewritten:", rewrittenStyle, s.Rewritten)
	renderList("Failed:", errorStyle, s.Failed)

	return b.String()
}
