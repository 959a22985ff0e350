package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

func sampleStrip() m.Envelope {
	return m.Envelope{
		Analyzer:      m.AnalyzerStrip,
		FilesAnalyzed: 3,
		Strip: &m.StripReport{
			Top:           10,
			Targets:       []string{"console.log"},
			Applied:       true,
			BackupDir:     ".codeaudit-backups/backup-20240101-000000",
			Original:      5,
			Removed:       4,
			Remaining:     1,
			FilesModified: 2,
			Files: []m.StripEntry{
				{Path: "src/a.ts", Original: 3, Removed: 3, Modified: true},
				{Path: "src/b.js", Original: 2, Removed: 1, Remaining: 1, Modified: true},
			},
			Failed: []m.SkippedFile{{Path: "src/c.ts", Reason: "file changed since it was scanned"}},
		},
	}
}

func TestTUI_DisplayReport_PrintsWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer

	ui := NewTUI(&buf, strings.NewReader(""))

	require.NoError(t, ui.DisplayReport(sampleStrip()))

	output := buf.String()
	for _, want := range []string{
		"Debug statements",
		"applied",
		"src/a.ts",
		"removed 1, remaining 1",
		"Review manually: src/b.js (1 left)",
		"Failed: src/c.ts",
		".codeaudit-backups/backup-20240101-000000",
	} {
		assert.Contains(t, output, want)
	}

	assert.NotContains(t, output, "q quit", "static output has no key help")
}

func TestTUI_DisplaySources(t *testing.T) {
	var buf bytes.Buffer

	ui := NewTUI(&buf, strings.NewReader(""))

	require.NoError(t, ui.DisplaySources([]m.SourceFile{
		{Rel: "a.ts", Kind: m.KindTypeScript, Size: 120},
		{Rel: "b.scss", Kind: m.KindSCSS, Size: 30},
	}))

	output := buf.String()
	assert.Contains(t, output, "Source files")
	assert.Contains(t, output, "150 bytes")
	assert.Contains(t, output, "b.scss  SCSS")
}

func TestTUI_DisplayMessage(t *testing.T) {
	var buf bytes.Buffer

	NewTUI(&buf, nil).DisplayMessage("watching %s", "src")

	assert.Contains(t, buf.String(), "watching src")
}

func TestTUI_Confirm(t *testing.T) {
	var buf bytes.Buffer

	ui := NewTUI(&buf, strings.NewReader("yes\nno\n"))

	ok, err := ui.Confirm("Apply?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ui.Confirm("Again?")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, buf.String(), "Apply?")
}

func TestAnimateScroll_Edges(t *testing.T) {
	if got := animateScroll("hello", 0, 0); got != "" {
		t.Fatalf("animateScroll width 0 = %q, want empty", got)
	}

	if got := animateScroll("hi", 5, 0); got != "hi" {
		t.Fatalf("animateScroll short text = %q, want hi", got)
	}

	if got := animateScroll("abcdef", 3, 0); got != "ab…" {
		t.Fatalf("animateScroll pause = %q, want ab…", got)
	}

	got := animateScroll("abcdef", 3, 10)
	if got == "ab…" || len([]rune(got)) != 3 {
		t.Fatalf("animateScroll scrolled = %q, want len 3 and not truncated", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 0); got != "" {
		t.Fatalf("truncateToWidth width 0 = %q, want empty", got)
	}

	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("truncateToWidth no truncation = %q", got)
	}

	if got := truncateToWidth("hello", 1); got != "…" {
		t.Fatalf("truncateToWidth width 1 = %q, want ellipsis", got)
	}

	if got := truncateToWidth("hello", 2); got != "h…" {
		t.Fatalf("truncateToWidth width 2 = %q, want h…", got)
	}
}

func manyFindings(n int) reportView {
	v := reportView{title: "File length", countLabel: "Lines"}
	for i := 0; i < n; i++ {
		v.findings = append(v.findings, finding{path: "src/file" + string(rune('a'+i%26)) + ".ts", count: 500 - i})
	}

	return v
}

func TestFindingsModel_Fits(t *testing.T) {
	assert.True(t, newFindingsModel(manyFindings(100), 0, 0).fits(), "unknown height prints everything")
	assert.True(t, newFindingsModel(manyFindings(3), 80, 24).fits())
	assert.False(t, newFindingsModel(manyFindings(40), 80, 24).fits())
}

func TestFindingsModel_Lifecycle(t *testing.T) {
	model := newFindingsModel(manyFindings(40), 80, 24)

	cmd := model.Init()
	require.NotNil(t, cmd)

	if _, ok := cmd().(tickMsg); !ok {
		t.Fatalf("Init() cmd did not return tickMsg")
	}

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(findingsModel)
	assert.Equal(t, 100, model.width)
	assert.Equal(t, 30, model.height)

	updated, cmd = model.Update(tickMsg(time.Now()))
	model = updated.(findingsModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, model.animOffset)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(findingsModel)
	assert.Equal(t, 1, model.list.Index())
	assert.Equal(t, 0, model.animOffset, "moving the selection restarts the scroll")

	view := model.View()
	assert.Contains(t, view, "File length")
	assert.Contains(t, view, "Lines")
	assert.Contains(t, view, "q quit")

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFindingsModel_EmptyReport(t *testing.T) {
	model := newFindingsModel(reportView{title: "Documentation coverage"}, 80, 24)

	assert.Contains(t, model.View(), "Nothing to report")
	assert.NotContains(t, model.staticView(), "Path")
}

func TestMenuModel(t *testing.T) {
	available := []m.AnalyzerKind{m.AnalyzerFileLength, m.AnalyzerMethodLength, m.AnalyzerDocCoverage}

	press := func(mm menuModel, keys ...tea.KeyMsg) (menuModel, tea.Cmd) {
		var cmd tea.Cmd

		for _, k := range keys {
			var updated tea.Model

			updated, cmd = mm.Update(k)
			mm = updated.(menuModel)
		}

		return mm, cmd
	}

	runes := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}

	t.Run("toggle and run", func(t *testing.T) {
		mm, cmd := press(newMenuModel(available), space, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, space, tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, mm.done)
		require.NotNil(t, cmd)
		assert.Equal(t, []m.AnalyzerKind{m.AnalyzerFileLength, m.AnalyzerDocCoverage}, mm.selected())
	})

	t.Run("enter without selection picks the cursor", func(t *testing.T) {
		mm, _ := press(newMenuModel(available), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, []m.AnalyzerKind{m.AnalyzerMethodLength}, mm.selected())
	})

	t.Run("select all toggles", func(t *testing.T) {
		mm, _ := press(newMenuModel(available), runes("a"))
		assert.Len(t, mm.selected(), 3)

		mm, _ = press(mm, runes("a"))
		assert.Empty(t, mm.selected())
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		mm, _ := press(newMenuModel(available), tea.KeyMsg{Type: tea.KeyUp}, runes("j"), runes("j"), runes("j"), runes("j"))
		assert.Equal(t, 2, mm.cursor)
	})

	t.Run("quit cancels", func(t *testing.T) {
		mm, cmd := press(newMenuModel(available), runes("q"))

		assert.True(t, mm.cancelled)
		require.NotNil(t, cmd)
		assert.Empty(t, mm.View())
	})

	t.Run("view marks selection", func(t *testing.T) {
		mm, _ := press(newMenuModel(available), space)

		view := mm.View()
		assert.Contains(t, view, "Select analyzers")
		assert.Contains(t, view, "[x]")
		assert.Contains(t, view, "[ ] Method length")
	})
}

func TestNewReportView(t *testing.T) {
	t.Run("file length", func(t *testing.T) {
		v := newReportView(m.Envelope{
			Analyzer: m.AnalyzerFileLength,
			FileLength: &m.FileLengthReport{
				Threshold:  400,
				Top:        1,
				KindCounts: map[m.FileKind]int{m.KindTypeScript: 2, m.KindHTML: 1},
				Files: []m.FileLengthEntry{
					{Path: "a.ts", Kind: m.KindTypeScript, Counts: m.LineCounts{Total: 900}},
					{Path: "b.ts", Kind: m.KindTypeScript, Counts: m.LineCounts{Total: 500}},
				},
			},
		})

		assert.Equal(t, "File length", v.title)
		assert.Contains(t, v.summary, [2]string{"TypeScript files", "2"})
		assert.Contains(t, v.summary, [2]string{"HTML files", "1"})
		require.Len(t, v.findings, 2)
		assert.Equal(t, [][]string{{"1", "a.ts", "TypeScript", "900", "0", "0", "0"}}, v.rows())
	})

	t.Run("doc coverage", func(t *testing.T) {
		v := newReportView(m.Envelope{
			Analyzer: m.AnalyzerDocCoverage,
			DocCoverage: &m.DocCoverageReport{
				Eligible:   4,
				Documented: 3,
				Coverage:   75,
				Groups:     []m.DocGroup{{Kind: "Method", Count: 1, Examples: []m.DocEntry{{Name: "save"}}}},
				Files:      []m.DocFileEntry{{Path: "a.ts", Missing: 1, Names: []string{"save"}}},
			},
		})

		assert.Contains(t, v.summary, [2]string{"Coverage", "75.0% (3 of 4 documented)"})
		assert.Contains(t, v.summary, [2]string{"Method", "1 missing (save)"})
		assert.Equal(t, "save", v.findings[0].detail)
	})

	t.Run("strip dry run", func(t *testing.T) {
		v := newReportView(m.Envelope{
			Analyzer: m.AnalyzerStrip,
			Strip:    &m.StripReport{Targets: []string{"console.log", "console.debug"}},
		})

		assert.Equal(t, []string{"#", "Path", "Found", "Removable", "Remaining"}, v.header)
		assert.Contains(t, v.summary, [2]string{"Mode", "dry run"})
		assert.Contains(t, v.summary, [2]string{"Targets", "console.log, console.debug"})
	})
}
