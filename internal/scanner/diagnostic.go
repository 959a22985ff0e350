package scanner

import "fmt"

// DiagnosticKind names a malformed lexical state.
type DiagnosticKind int

const (
	DiagnosticNone DiagnosticKind = iota
	UnterminatedString
	UnterminatedRegex
	UnterminatedBlockComment
	UnterminatedTemplate
	StrayClosingBrace
	StrayClosingParen
)

var diagnosticNames = map[DiagnosticKind]string{
	DiagnosticNone:           "none",
	UnterminatedString:       "unterminated string",
	UnterminatedRegex:        "unterminated regex",
	UnterminatedBlockComment: "unterminated block comment",
	UnterminatedTemplate:     "unterminated template literal",
	StrayClosingBrace:        "stray closing brace",
	StrayClosingParen:        "stray closing parenthesis",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticNames[k]; ok {
		return name
	}

	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic reports a recovered lexical problem. Scanning always continues.
type Diagnostic struct {
	Line int
	Kind DiagnosticKind
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Kind)
}
