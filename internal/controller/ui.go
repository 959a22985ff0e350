// Package controller renders codeaudit results, either as plain tables or as
// an interactive terminal UI.
package controller

import (
	m "github.com/mouse-blink/codeaudit/internal/model"
)

// UI defines how the workflow talks to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplaySources lists the files selected for analysis.
	DisplaySources(sources []m.SourceFile) error
	// DisplayReport renders one analyzer report.
	DisplayReport(env m.Envelope) error
	// DisplayMessage prints a one-line status message.
	DisplayMessage(format string, args ...any)
	// Confirm asks a yes/no question; the default answer is no.
	Confirm(prompt string) (bool, error)
	// SelectAnalyzers lets the user pick analyzers from available.
	SelectAnalyzers(available []m.AnalyzerKind) ([]m.AnalyzerKind, error)
}
