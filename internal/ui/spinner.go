package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner reports that slow work is in progress.
type Spinner interface {
	// SetTitle replaces the text shown next to the spinner.
	SetTitle(title string)
	// Stop halts the spinner and clears it. Safe to call more than once.
	Stop()
}

// NewSpinner starts a spinner writing to w. In headless mode, or when color
// is false, the title is printed once as a plain line instead.
func NewSpinner(hm *HeadlessManager, w io.Writer, title string, color bool) Spinner {
	if hm.IsHeadless() || !color {
		return newHeadlessSpinner(title, w)
	}
	return newInteractiveSpinner(title, w)
}

// --- interactiveSpinner ---

// spinnerTitleMsg is sent to update the spinner title.
type spinnerTitleMsg string

// spinnerStopMsg is sent to stop the spinner.
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner implements Spinner with an animated bubbles spinner.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

// The program reads no input: stdin may carry the statusline payload.
func newInteractiveSpinner(title string, w io.Writer) *interactiveSpinner {
	p := tea.NewProgram(newSpinnerModel(title),
		tea.WithOutput(w),
		tea.WithInput(strings.NewReader("")),
	)
	s := &interactiveSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner and waits for the program to exit.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- headlessSpinner ---

// headlessSpinner implements Spinner with plain text output.
type headlessSpinner struct {
	writer  io.Writer
	title   string
	stopped bool
}

func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{title: title, writer: w}
	_, _ = fmt.Fprintf(w, "%s\n", title)
	return s
}

// SetTitle updates the title and prints it.
func (s *headlessSpinner) SetTitle(title string) {
	if s.stopped || title == s.title {
		return
	}
	s.title = title
	_, _ = fmt.Fprintf(s.writer, "%s\n", title)
}

// Stop marks the spinner stopped; later titles are dropped.
func (s *headlessSpinner) Stop() {
	s.stopped = true
}
