package scanner

import (
	"strings"

	"github.com/mouse-blink/codeaudit/internal/model"
)

// Mode is the lexical context of a character.
type Mode int

const (
	// Normal is executable code, including the inside of template holes.
	Normal Mode = iota
	// LineComment runs from the line comment marker to the end of the line.
	LineComment
	// BlockComment runs from the block opener to the block closer and may span lines.
	BlockComment
	// SingleQuoteString is a '...' literal.
	SingleQuoteString
	// DoubleQuoteString is a "..." literal.
	DoubleQuoteString
	// TemplateLiteral is a `...` literal and may span lines.
	TemplateLiteral
	// RegexLiteral is a /.../ literal.
	RegexLiteral
)

var modeNames = [...]string{
	Normal:            "normal",
	LineComment:       "line-comment",
	BlockComment:      "block-comment",
	SingleQuoteString: "single-quote",
	DoubleQuoteString: "double-quote",
	TemplateLiteral:   "template",
	RegexLiteral:      "regex",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}

	return "unknown"
}

// IsComment reports whether the mode is one of the comment modes.
func (m Mode) IsComment() bool {
	return m == LineComment || m == BlockComment
}

// IsLiteral reports whether the mode is a string, template or regex literal.
func (m Mode) IsLiteral() bool {
	return m == SingleQuoteString || m == DoubleQuoteString || m == TemplateLiteral || m == RegexLiteral
}

// Syntax describes which lexical features a file kind supports.
type Syntax struct {
	LineComment string
	BlockOpen   string
	BlockClose  string
	Quotes      bool
	Templates   bool
	Regex       bool
	Constructs  bool
}

var (
	scriptSyntax = Syntax{
		LineComment: "//", BlockOpen: "/*", BlockClose: "*/",
		Quotes: true, Templates: true, Regex: true, Constructs: true,
	}
	cssSyntax  = Syntax{BlockOpen: "/*", BlockClose: "*/", Quotes: true}
	scssSyntax = Syntax{LineComment: "//", BlockOpen: "/*", BlockClose: "*/", Quotes: true}
	htmlSyntax = Syntax{BlockOpen: "<!--", BlockClose: "-->"}
)

// SyntaxFor returns the lexical features of kind. Unknown kinds scan like scripts.
func SyntaxFor(kind model.FileKind) Syntax {
	switch kind {
	case model.KindCSS:
		return cssSyntax
	case model.KindSCSS, model.KindSASS:
		return scssSyntax
	case model.KindHTML:
		return htmlSyntax
	default:
		return scriptSyntax
	}
}

// Input is everything Step needs to know about the current character.
type Input struct {
	// Rest is the text from the current character to the end of its line.
	Rest string
	// Escaped is set when the current character follows an odd run of backslashes.
	Escaped bool
	// RegexAllowed is set when the previous significant token admits an expression.
	RegexAllowed bool
	// InClass is set inside a regex character class.
	InClass bool
}

// Transition is the outcome of Step.
type Transition struct {
	Next Mode
	// Width is the number of bytes consumed by the delimiter, zero for content.
	Width int
	// HoleOpen is set when a template literal enters a ${ } hole.
	HoleOpen bool
}

// Step decides the transition taken at the first character of in.Rest.
// It does not handle the end of a line (see EndOfLine) nor the brace closing a
// template hole, which depends on brace depth.
func Step(mode Mode, syn Syntax, in Input) Transition {
	stay := Transition{Next: mode}
	if in.Rest == "" {
		return stay
	}

	c := in.Rest[0]

	switch mode {
	case Normal:
		switch {
		case syn.LineComment != "" && strings.HasPrefix(in.Rest, syn.LineComment):
			return Transition{Next: LineComment, Width: len(syn.LineComment)}
		case syn.BlockOpen != "" && strings.HasPrefix(in.Rest, syn.BlockOpen):
			return Transition{Next: BlockComment, Width: len(syn.BlockOpen)}
		case syn.Quotes && c == '\'':
			return Transition{Next: SingleQuoteString, Width: 1}
		case syn.Quotes && c == '"':
			return Transition{Next: DoubleQuoteString, Width: 1}
		case syn.Templates && c == '`':
			return Transition{Next: TemplateLiteral, Width: 1}
		case syn.Regex && c == '/' && in.RegexAllowed:
			return Transition{Next: RegexLiteral, Width: 1}
		}
	case LineComment:
	case BlockComment:
		if strings.HasPrefix(in.Rest, syn.BlockClose) {
			return Transition{Next: Normal, Width: len(syn.BlockClose)}
		}
	case SingleQuoteString:
		if c == '\'' && !in.Escaped {
			return Transition{Next: Normal, Width: 1}
		}
	case DoubleQuoteString:
		if c == '"' && !in.Escaped {
			return Transition{Next: Normal, Width: 1}
		}
	case TemplateLiteral:
		if in.Escaped {
			break
		}

		if c == '`' {
			return Transition{Next: Normal, Width: 1}
		}

		if strings.HasPrefix(in.Rest, "${") {
			return Transition{Next: Normal, Width: 2, HoleOpen: true}
		}
	case RegexLiteral:
		if c == '/' && !in.Escaped && !in.InClass {
			return Transition{Next: Normal, Width: 1}
		}
	}

	return stay
}

// EndOfLine returns the mode in effect after a newline. Quoted strings and regex
// literals cannot span lines and are force-closed with a diagnostic, unless a
// string ends with a line-continuation backslash.
func EndOfLine(mode Mode, escaped bool) (Mode, DiagnosticKind) {
	switch mode {
	case LineComment:
		return Normal, DiagnosticNone
	case SingleQuoteString, DoubleQuoteString:
		if escaped {
			return mode, DiagnosticNone
		}

		return Normal, UnterminatedString
	case RegexLiteral:
		return Normal, UnterminatedRegex
	default:
		return mode, DiagnosticNone
	}
}

var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}
