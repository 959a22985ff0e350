package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// reservedRows is the screen space used by title, summary, headers and footer
// around the list.
const reservedRows = 9

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).PaddingLeft(2)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// findingDelegate renders one finding per line.
type findingDelegate struct {
	offset int
}

func (d findingDelegate) Height() int  { return 1 }
func (d findingDelegate) Spacing() int { return 0 }
func (d findingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d findingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	f, ok := item.(findingItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var pathStyle, countStyle lipgloss.Style

	var text string

	width := m.Width() - 8 // count column (6) + spacing (2)
	line := f.path
	if f.detail != "" {
		line += "  " + f.detail
	}

	if isSelected {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = pathStyle.
			Width(6).
			Align(lipgloss.Right)

		text = animateScroll(line, width, d.offset)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right)

		text = truncateToWidth(line, width)
	}

	_, _ = fmt.Fprintf(w, "%s  %s",
		countStyle.Render(fmt.Sprintf("%d", f.count)),
		pathStyle.Render(text),
	)
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	gap := "   "

	// ticks before scrolling starts
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// findingsModel browses the findings of one report.
type findingsModel struct {
	width        int
	height       int
	report       reportView
	list         list.Model
	delegate     findingDelegate
	animOffset   int
	lastSelected int
}

func newFindingsModel(report reportView, width, height int) findingsModel {
	items := make([]list.Item, len(report.findings))
	for i, f := range report.findings {
		items[i] = findingItem{finding: f}
	}

	delegate := findingDelegate{}
	l := list.New(items, delegate, 80, 20)
	l.SetShowPagination(false)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.FilterInput.Placeholder = "Filter by path…"

	return findingsModel{
		width:    width,
		height:   height,
		report:   report,
		list:     l,
		delegate: delegate,
	}
}

// fits reports whether every finding is visible without scrolling.
func (m findingsModel) fits() bool {
	return m.height == 0 || len(m.report.findings) <= m.listHeight()
}

func (m findingsModel) listHeight() int {
	h := m.height - reservedRows - len(m.report.summary) - len(m.report.notes)
	if h < 5 {
		h = 5
	}

	return h
}

func (m findingsModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m findingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.list.FilterState() != list.Filtering {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.list.SetDelegate(m.delegate)
		}

		return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		m.list, cmd = m.list.Update(msg)

		if m.list.Index() != m.lastSelected {
			m.lastSelected = m.list.Index()
			m.animOffset = 0
			m.delegate.offset = 0
			m.list.SetDelegate(m.delegate)
		}

		return m, cmd
	}

	return m, cmd
}

func (m findingsModel) View() string {
	footer := footerStyle.
		Align(lipgloss.Center).
		Width(m.width).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.renderTable(),
		m.renderNotes(),
		footer,
	)
}

// header renders the title and the summary lines.
func (m findingsModel) header() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.report.title))
	b.WriteString("\n")

	for _, kv := range m.report.summary {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(kv[0]+":"), accentStyle.Render(kv[1]))
	}

	return b.String()
}

func (m findingsModel) renderNotes() string {
	if len(m.report.notes) == 0 {
		return ""
	}

	lines := make([]string, len(m.report.notes))
	for i, n := range m.report.notes {
		lines[i] = noteStyle.Render(n)
	}

	return strings.Join(lines, "\n")
}

func (m findingsModel) renderTable() string {
	if len(m.report.findings) == 0 {
		return noteStyle.Render("Nothing to report")
	}

	// margin (2) + border (2) + padding (2)
	listWidth := m.width - 6
	if listWidth < 20 {
		listWidth = 74
	}

	m.list.SetHeight(m.listHeight())
	m.list.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%6s  %s", m.report.countLabel, "Path"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.list.View(),
		),
	)
}

// staticView renders the report without the interactive footer, for reports
// that fit on one screen or outputs that are not terminals.
func (m findingsModel) staticView() string {
	parts := []string{m.header()}

	if len(m.report.findings) > 0 {
		var b strings.Builder

		fmt.Fprintf(&b, "  %s  %s\n", footerStyle.Render(fmt.Sprintf("%6s", m.report.countLabel)), footerStyle.Render("Path"))

		for _, f := range m.report.findings {
			line := f.path
			if f.detail != "" {
				line += "  " + f.detail
			}

			fmt.Fprintf(&b, "  %6d  %s\n", f.count, line)
		}

		parts = append(parts, b.String())
	}

	if notes := m.renderNotes(); notes != "" {
		parts = append(parts, notes+"\n")
	}

	return strings.Join(parts, "\n")
}
