package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mouse-blink/codeaudit/internal/model"
)

func TestStep_Transitions(t *testing.T) {
	script := SyntaxFor(model.KindTypeScript)

	tests := []struct {
		name string
		mode Mode
		in   Input
		want Transition
	}{
		{"line comment", Normal, Input{Rest: "// x"}, Transition{Next: LineComment, Width: 2}},
		{"block comment", Normal, Input{Rest: "/* x */"}, Transition{Next: BlockComment, Width: 2}},
		{"doc comment opens block", Normal, Input{Rest: "/** x */"}, Transition{Next: BlockComment, Width: 2}},
		{"single quote", Normal, Input{Rest: "'a'"}, Transition{Next: SingleQuoteString, Width: 1}},
		{"double quote", Normal, Input{Rest: `"a"`}, Transition{Next: DoubleQuoteString, Width: 1}},
		{"template", Normal, Input{Rest: "`a`"}, Transition{Next: TemplateLiteral, Width: 1}},
		{"regex allowed", Normal, Input{Rest: "/a/", RegexAllowed: true}, Transition{Next: RegexLiteral, Width: 1}},
		{"division", Normal, Input{Rest: "/ 2"}, Transition{Next: Normal}},
		{"comment wins over regex", Normal, Input{Rest: "//", RegexAllowed: true}, Transition{Next: LineComment, Width: 2}},
		{"plain code", Normal, Input{Rest: "a"}, Transition{Next: Normal}},
		{"block close", BlockComment, Input{Rest: "*/ x"}, Transition{Next: Normal, Width: 2}},
		{"star inside block", BlockComment, Input{Rest: "* x"}, Transition{Next: BlockComment}},
		{"line comment content", LineComment, Input{Rest: "*/"}, Transition{Next: LineComment}},
		{"single close", SingleQuoteString, Input{Rest: "'"}, Transition{Next: Normal, Width: 1}},
		{"escaped single", SingleQuoteString, Input{Rest: "'", Escaped: true}, Transition{Next: SingleQuoteString}},
		{"double in single", SingleQuoteString, Input{Rest: `"`}, Transition{Next: SingleQuoteString}},
		{"double close", DoubleQuoteString, Input{Rest: `"`}, Transition{Next: Normal, Width: 1}},
		{"escaped double", DoubleQuoteString, Input{Rest: `"`, Escaped: true}, Transition{Next: DoubleQuoteString}},
		{"template close", TemplateLiteral, Input{Rest: "`"}, Transition{Next: Normal, Width: 1}},
		{"template hole", TemplateLiteral, Input{Rest: "${a}"}, Transition{Next: Normal, Width: 2, HoleOpen: true}},
		{"escaped hole", TemplateLiteral, Input{Rest: "${a}", Escaped: true}, Transition{Next: TemplateLiteral}},
		{"regex close", RegexLiteral, Input{Rest: "/g"}, Transition{Next: Normal, Width: 1}},
		{"escaped slash", RegexLiteral, Input{Rest: "/", Escaped: true}, Transition{Next: RegexLiteral}},
		{"slash in class", RegexLiteral, Input{Rest: "/]/", InClass: true}, Transition{Next: RegexLiteral}},
		{"empty rest", Normal, Input{}, Transition{Next: Normal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Step(tt.mode, script, tt.in))
		})
	}
}

func TestStep_KindSyntax(t *testing.T) {
	t.Run("css has no line comments", func(t *testing.T) {
		got := Step(Normal, SyntaxFor(model.KindCSS), Input{Rest: "// x"})
		assert.Equal(t, Normal, got.Next)
	})

	t.Run("scss has line comments", func(t *testing.T) {
		got := Step(Normal, SyntaxFor(model.KindSCSS), Input{Rest: "// x"})
		assert.Equal(t, LineComment, got.Next)
	})

	t.Run("html comments", func(t *testing.T) {
		html := SyntaxFor(model.KindHTML)
		assert.Equal(t, Transition{Next: BlockComment, Width: 4}, Step(Normal, html, Input{Rest: "<!-- x -->"}))
		assert.Equal(t, Transition{Next: Normal, Width: 3}, Step(BlockComment, html, Input{Rest: "-->"}))
		assert.Equal(t, Normal, Step(Normal, html, Input{Rest: "'quote"}).Next)
	})

	t.Run("css has no regex or templates", func(t *testing.T) {
		css := SyntaxFor(model.KindCSS)
		assert.Equal(t, Normal, Step(Normal, css, Input{Rest: "/a/", RegexAllowed: true}).Next)
		assert.Equal(t, Normal, Step(Normal, css, Input{Rest: "`"}).Next)
	})
}

func TestEndOfLine(t *testing.T) {
	tests := []struct {
		mode    Mode
		escaped bool
		want    Mode
		diag    DiagnosticKind
	}{
		{Normal, false, Normal, DiagnosticNone},
		{LineComment, false, Normal, DiagnosticNone},
		{BlockComment, false, BlockComment, DiagnosticNone},
		{TemplateLiteral, false, TemplateLiteral, DiagnosticNone},
		{SingleQuoteString, false, Normal, UnterminatedString},
		{DoubleQuoteString, false, Normal, UnterminatedString},
		{DoubleQuoteString, true, DoubleQuoteString, DiagnosticNone},
		{RegexLiteral, false, Normal, UnterminatedRegex},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, diag := EndOfLine(tt.mode, tt.escaped)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.diag, diag)
		})
	}
}

func TestTracker_RegexContext(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		regex bool
	}{
		{"after assignment", "x = /a/", true},
		{"after identifier", "a / b / c", false},
		{"after number", "10 / 2 / 5", false},
		{"after paren", "(a) / 2 / 1", false},
		{"after return", "return /a/", true},
		{"after call paren", "f(/a/)", true},
		{"start of line", "/a/.test(x)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker(tt.text, scriptSyntax)
			seen := false

			for i := 0; i < len(tt.text); {
				st := tr.advance(i, 1)
				if st.next == RegexLiteral {
					seen = true
				}

				i += st.width
			}

			assert.Equal(t, tt.regex, seen)
		})
	}
}
