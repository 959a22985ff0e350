package controller

import (
	"bufio"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	input  io.Reader
	lines  *bufio.Reader
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, input io.Reader) *TUI {
	return &TUI{output: output, input: input}
}

// DisplaySources shows the selected files, in a browser when they do not fit
// on the screen.
func (t *TUI) DisplaySources(sources []m.SourceFile) error {
	var size int64

	v := reportView{title: "Source files", countLabel: "Bytes"}

	for _, src := range sources {
		size += src.Size
		v.findings = append(v.findings, finding{
			path:   string(src.Rel),
			count:  int(src.Size),
			detail: src.Kind.Label(),
		})
	}

	v.summary = [][2]string{
		{"Files", fmt.Sprintf("%d", len(sources))},
		{"Total size", fmt.Sprintf("%d bytes", size)},
	}

	return t.show(v)
}

// DisplayReport shows one report.
func (t *TUI) DisplayReport(env m.Envelope) error {
	return t.show(newReportView(env))
}

func (t *TUI) show(v reportView) error {
	width, height, _ := terminalSize(t.output)
	model := newFindingsModel(v, width, height)

	if model.fits() {
		_, err := fmt.Fprint(t.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// leave the summary on screen once the browser closes
	_, err := fmt.Fprint(t.output, model.header())

	return err
}

// DisplayMessage prints a styled status line.
func (t *TUI) DisplayMessage(format string, args ...any) {
	_, _ = fmt.Fprintln(t.output, accentStyle.Render(fmt.Sprintf(format, args...)))
}

// Confirm asks a yes/no question; anything but y or Y is a no.
func (t *TUI) Confirm(prompt string) (bool, error) {
	q := lipgloss.NewStyle().Bold(true).Render(prompt)
	_, _ = fmt.Fprintf(t.output, "%s %s ", q, footerStyle.Render("[y/N]"))

	if t.lines == nil {
		t.lines = bufio.NewReader(t.input)
	}

	answer, err := readAnswer(t.lines)
	if err != nil {
		return false, err
	}

	return isYes(answer), nil
}

// SelectAnalyzers runs the interactive analyzer menu.
func (t *TUI) SelectAnalyzers(available []m.AnalyzerKind) ([]m.AnalyzerKind, error) {
	program := tea.NewProgram(newMenuModel(available), tea.WithOutput(t.output), tea.WithInput(t.input))

	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	menu, ok := final.(menuModel)
	if !ok || menu.cancelled || !menu.done {
		return nil, m.ErrCancelled
	}

	return menu.selected(), nil
}
