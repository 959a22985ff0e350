package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/codeaudit/internal/model"
)

func lines(src ...string) string {
	return strings.Join(src, "\n") + "\n"
}

func classes(r *Result) []Class {
	out := make([]Class, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Class
	}

	return out
}

func TestScan_LineCountsSumToTotal(t *testing.T) {
	src := lines(
		"// header",
		"",
		"/* block",
		"   still block */",
		"const a = 1; // trailing",
		"   ",
		"function f() {",
		"  return `x",
		"",
		"y`;",
		"}",
	)

	r := Scan(src, model.KindTypeScript)

	require.Len(t, r.Lines, 11)
	assert.Equal(t, len(r.Lines), r.Count(Blank)+r.Count(CommentOnly)+r.Count(Code))
	assert.Equal(t, []Class{
		CommentOnly, Blank, CommentOnly, CommentOnly, Code, Blank, Code, Code, Blank, Code, Code,
	}, classes(r))
}

func TestScan_LineNumbering(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		r := Scan("", model.KindTypeScript)
		assert.Empty(t, r.Lines)
	})

	t.Run("no trailing newline", func(t *testing.T) {
		r := Scan("a\nb", model.KindTypeScript)
		require.Len(t, r.Lines, 2)
		assert.Equal(t, "b", r.Lines[1].Text)
	})

	t.Run("crlf", func(t *testing.T) {
		r := Scan("a;\r\n\r\nb;\r\n", model.KindTypeScript)
		require.Len(t, r.Lines, 3)
		assert.Equal(t, "a;", r.Lines[0].Text)
		assert.Equal(t, Blank, r.Lines[1].Class)
	})
}

func TestScan_WellFormedEndsAtZeroDepth(t *testing.T) {
	src := lines(
		"export class A {",
		"  run(items: string[]): void {",
		"    items.forEach((x) => {",
		"      if (x) { console.log(`${x}`); }",
		"    });",
		"  }",
		"}",
	)

	r := Scan(src, model.KindTypeScript)

	assert.Equal(t, DepthFrame{}, r.Final)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, DepthFrame{Brace: 1}, r.Lines[1].Start)
	assert.Equal(t, DepthFrame{Brace: 2}, r.Lines[1].End)
}

func TestScan_StringsAreInert(t *testing.T) {
	r := Scan(`const s = "{ not a brace // not a comment";`+"\n", model.KindTypeScript)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, Code, r.Lines[0].Class)
	assert.Equal(t, DepthFrame{}, r.Lines[0].End)
	assert.Equal(t, StyleNone, r.Lines[0].Comment.Line)

	r = Scan(`const s = '/* nope */ {(';`+"\n", model.KindJavaScript)
	assert.Equal(t, DepthFrame{}, r.Final)
	assert.Equal(t, StyleNone, r.Lines[0].Comment.Closed)
}

func TestScan_EscapedQuotes(t *testing.T) {
	r := Scan(lines(
		`const a = "say \"hi\" {";`,
		`const b = 'it\'s {';`,
		`const c = "ends with backslash \\";`,
		`f({`,
		`});`,
	), model.KindTypeScript)

	assert.Equal(t, DepthFrame{}, r.Final)
	assert.Empty(t, r.Diagnostics)
}

func TestScan_MultiLineTemplate(t *testing.T) {
	src := lines(
		"const t = `first",
		"  // not a comment",
		"",
		"  ${ { a: 1 } } {",
		"last`;",
	)

	r := Scan(src, model.KindTypeScript)

	assert.Equal(t, []Class{Code, Code, Blank, Code, Code}, classes(r))
	assert.True(t, r.Lines[0].Continues)
	assert.True(t, r.Lines[3].Continues)
	assert.False(t, r.Lines[4].Continues)
	assert.Equal(t, DepthFrame{}, r.Lines[3].Start)
	assert.Equal(t, DepthFrame{}, r.Lines[3].End)
	assert.Equal(t, DepthFrame{}, r.Final)
}

func TestScan_NestedTemplates(t *testing.T) {
	r := Scan("const t = `a ${ cond ? `b ${x}` : '}' } c`;\nfoo();\n", model.KindTypeScript)

	assert.Equal(t, DepthFrame{}, r.Final)
	assert.Empty(t, r.Diagnostics)
	assert.False(t, r.Lines[0].Continues)
}

func TestScan_RegexLiteral(t *testing.T) {
	r := Scan("const re = /foo\\/bar/g; // comment\n", model.KindTypeScript)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, Code, r.Lines[0].Class)
	assert.Equal(t, StyleLine, r.Lines[0].Comment.Line)
	assert.Empty(t, r.Diagnostics)

	t.Run("character class", func(t *testing.T) {
		r := Scan("const re = /[/{]+/; if (x) {\n}\n", model.KindTypeScript)
		assert.Equal(t, DepthFrame{}, r.Final)
		assert.Equal(t, DepthFrame{Brace: 1}, r.Lines[0].End)
	})

	t.Run("division is not a regex", func(t *testing.T) {
		r := Scan("const x = a / b; const y = c / d; // half\n", model.KindTypeScript)
		assert.Equal(t, StyleLine, r.Lines[0].Comment.Line)
		assert.Empty(t, r.Diagnostics)
	})
}

func TestScan_Diagnostics(t *testing.T) {
	t.Run("unterminated string is closed at end of line", func(t *testing.T) {
		r := Scan(lines(`const s = "open {`, `f() {`, `}`), model.KindTypeScript)
		assert.Equal(t, []Diagnostic{{Line: 1, Kind: UnterminatedString}}, r.Diagnostics)
		assert.Equal(t, DepthFrame{}, r.Final)
		assert.Equal(t, Code, r.Lines[1].Class)
	})

	t.Run("line continuation keeps the string open", func(t *testing.T) {
		r := Scan(lines(`const s = "a \`, `b {";`), model.KindJavaScript)
		assert.Empty(t, r.Diagnostics)
		assert.True(t, r.Lines[0].Continues)
		assert.Equal(t, DepthFrame{}, r.Final)
	})

	t.Run("stray closers clamp at zero", func(t *testing.T) {
		r := Scan(lines("}", ")", "f() {", "}"), model.KindTypeScript)
		assert.Equal(t, []Diagnostic{
			{Line: 1, Kind: StrayClosingBrace},
			{Line: 2, Kind: StrayClosingParen},
		}, r.Diagnostics)
		assert.Equal(t, DepthFrame{}, r.Final)
		require.Len(t, r.Constructs, 1)
		assert.Equal(t, 4, r.Constructs[0].EndLine)
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		r := Scan(lines("a();", "/* open", "b() {"), model.KindTypeScript)
		assert.Equal(t, 2, r.UnparseableFrom)
		assert.Contains(t, r.Diagnostics, Diagnostic{Line: 2, Kind: UnterminatedBlockComment})
		assert.Equal(t, CommentOnly, r.Lines[2].Class)
		assert.Empty(t, r.Constructs)
	})

	t.Run("unterminated template", func(t *testing.T) {
		r := Scan(lines("x();", "const t = `open", "more"), model.KindTypeScript)
		assert.Equal(t, 2, r.UnparseableFrom)
		assert.Contains(t, r.Diagnostics, Diagnostic{Line: 2, Kind: UnterminatedTemplate})
	})
}

func TestScan_OtherKinds(t *testing.T) {
	t.Run("css", func(t *testing.T) {
		r := Scan(lines("/* header */", ".a { color: red; }", "// not a comment in css"), model.KindCSS)
		assert.Equal(t, []Class{CommentOnly, Code, Code}, classes(r))
		assert.Empty(t, r.Constructs)
	})

	t.Run("scss", func(t *testing.T) {
		r := Scan(lines("// note", "$a: 1px;", "@mixin m($x) {", "}"), model.KindSCSS)
		assert.Equal(t, []Class{CommentOnly, Code, Code, Code}, classes(r))
		assert.Empty(t, r.Constructs)
		assert.Equal(t, DepthFrame{}, r.Final)
	})

	t.Run("html", func(t *testing.T) {
		r := Scan(lines("<!-- a", "b -->", "<p>it's // fine</p>", ""), model.KindHTML)
		assert.Equal(t, []Class{CommentOnly, CommentOnly, Code, Blank}, classes(r))
		assert.Empty(t, r.Diagnostics)
	})
}

func TestScan_DocLines(t *testing.T) {
	r := Scan(lines("/**", " * Doc.", " */", "/* plain */", "f() {", "}"), model.KindTypeScript)

	assert.True(t, r.Lines[0].Comment.Doc)
	assert.True(t, r.Lines[1].Comment.Doc)
	assert.True(t, r.Lines[2].Comment.Doc)
	assert.False(t, r.Lines[3].Comment.Doc)
	assert.Equal(t, StyleDoc, r.Lines[2].Comment.Closed)
	assert.Equal(t, 1, r.Lines[2].Comment.ClosedFrom)
	assert.Equal(t, StyleBlock, r.Lines[3].Comment.Closed)
}

func TestScan_Idempotent(t *testing.T) {
	src := lines(
		"/** Doc */",
		"export function a(x) {",
		"  const re = /}/;",
		"  return `${x}`;",
		"}",
		"const b = (y) => y * 2;",
	)

	assert.Equal(t, Scan(src, model.KindJavaScript), Scan(src, model.KindJavaScript))
}
