package controller

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// SimpleUI implements UI with plain tables written to the command output.
type SimpleUI struct {
	cmd *cobra.Command
	in  *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySources prints the selected files.
func (s *SimpleUI) DisplaySources(sources []m.SourceFile) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	var size int64

	for _, src := range sources {
		table.Append([]string{string(src.Rel), src.Kind.Label(), strconv.FormatInt(src.Size, 10)})
		size += src.Size
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(sources)), "", strconv.FormatInt(size, 10)})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReport prints the summary and the top findings of one report.
func (s *SimpleUI) DisplayReport(env m.Envelope) error {
	v := newReportView(env)

	s.printf("\n== %s ==\n", v.title)

	for _, kv := range v.summary {
		s.printf("%-16s %s\n", kv[0]+":", kv[1])
	}

	if rows := v.rows(); len(rows) > 0 {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader(v.header)
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)
		table.AppendBulk(rows)

		if len(rows) < len(v.findings) {
			footer := make([]string, len(v.header))
			footer[1] = fmt.Sprintf("%d more", len(v.findings)-len(rows))
			table.SetFooter(footer)
		}

		table.Render()
		s.printf("\n%s", tableBuffer.String())
	}

	for _, note := range v.notes {
		s.printf("%s\n", note)
	}

	return nil
}

// DisplayMessage prints a status line.
func (s *SimpleUI) DisplayMessage(format string, args ...any) {
	s.printf(format+"\n", args...)
}

// Confirm asks on the command output and reads the answer from its input.
func (s *SimpleUI) Confirm(prompt string) (bool, error) {
	s.printf("%s [y/N]: ", prompt)

	answer, err := s.readLine()
	if err != nil {
		return false, err
	}

	return isYes(answer), nil
}

// SelectAnalyzers shows a numbered menu. The answer is a list of numbers
// separated by commas or spaces, or "a" for all of them.
func (s *SimpleUI) SelectAnalyzers(available []m.AnalyzerKind) ([]m.AnalyzerKind, error) {
	s.printf("Select analyzers:\n")

	for i, a := range available {
		s.printf("  %d) %s\n", i+1, a.Title())
	}

	s.printf("  a) all\n  q) quit\nChoice: ")

	answer, err := s.readLine()
	if err != nil {
		return nil, err
	}

	return parseSelection(answer, available)
}

func parseSelection(answer string, available []m.AnalyzerKind) ([]m.AnalyzerKind, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))

	switch answer {
	case "", "q", "quit":
		return nil, m.ErrCancelled
	case "a", "all":
		return append([]m.AnalyzerKind(nil), available...), nil
	}

	seen := make(map[int]bool)

	var selected []m.AnalyzerKind

	for _, field := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(available) {
			return nil, fmt.Errorf("invalid choice %q", field)
		}

		if !seen[n] {
			seen[n] = true
			selected = append(selected, available[n-1])
		}
	}

	return selected, nil
}

func (s *SimpleUI) readLine() (string, error) {
	if s.in == nil {
		s.in = bufio.NewReader(s.cmd.InOrStdin())
	}

	return readAnswer(s.in)
}

// readAnswer reads one line; end of input counts as an empty answer.
func readAnswer(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
