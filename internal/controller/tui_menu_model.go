package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// menuModel is a multi-select list of analyzers.
type menuModel struct {
	items     []analyzerItem
	cursor    int
	done      bool
	cancelled bool
}

func newMenuModel(available []m.AnalyzerKind) menuModel {
	items := make([]analyzerItem, len(available))
	for i, a := range available {
		items[i] = analyzerItem{kind: a}
	}

	return menuModel{items: items}
}

func (mm menuModel) Init() tea.Cmd {
	return nil
}

//nolint:cyclop // one case per key binding
func (mm menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return mm, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		mm.cancelled = true
		return mm, tea.Quit
	case "up", "k":
		if mm.cursor > 0 {
			mm.cursor--
		}
	case "down", "j":
		if mm.cursor < len(mm.items)-1 {
			mm.cursor++
		}
	case " ", "x":
		if len(mm.items) > 0 {
			mm.items[mm.cursor].selected = !mm.items[mm.cursor].selected
		}
	case "a":
		all := !mm.allSelected()
		for i := range mm.items {
			mm.items[i].selected = all
		}
	case "enter":
		if len(mm.selected()) == 0 && len(mm.items) > 0 {
			mm.items[mm.cursor].selected = true
		}

		mm.done = true

		return mm, tea.Quit
	}

	return mm, nil
}

func (mm menuModel) allSelected() bool {
	for _, it := range mm.items {
		if !it.selected {
			return false
		}
	}

	return true
}

func (mm menuModel) selected() []m.AnalyzerKind {
	var out []m.AnalyzerKind

	for _, it := range mm.items {
		if it.selected {
			out = append(out, it.kind)
		}
	}

	return out
}

func (mm menuModel) View() string {
	if mm.done || mm.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Select analyzers"))
	b.WriteString("\n\n")

	for i, it := range mm.items {
		cursor := "  "
		if i == mm.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		name := it.kind.Title()

		if it.selected {
			check = selectedStyle.Render("[x]")
			name = selectedStyle.Render(name)
		}

		fmt.Fprintf(&b, "  %s%s %s\n", cursor, check, name)
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("  space toggle • a all • enter run • q quit"))
	b.WriteString("\n")

	return b.String()
}
