// Package scanner classifies the lines of web source files and locates the
// boundaries of functions and methods without building a syntax tree.
package scanner

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mouse-blink/codeaudit/internal/model"
)

// DefaultLifecycleHooks are the framework callbacks reported as lifecycle hooks.
var DefaultLifecycleHooks = []string{
	"ngOnInit", "ngOnDestroy", "ngOnChanges", "ngDoCheck",
	"ngAfterContentInit", "ngAfterContentChecked", "ngAfterViewInit", "ngAfterViewChecked",
	"componentDidMount", "componentDidUpdate", "componentWillUnmount",
}

type options struct {
	lineDocs bool
	hooks    map[string]bool
}

// Option configures Scan.
type Option func(*options)

// WithLineCommentDocs also accepts a run of // comments as documentation.
func WithLineCommentDocs() Option {
	return func(o *options) {
		o.lineDocs = true
	}
}

// WithLifecycleHooks replaces the names reported as lifecycle hooks.
func WithLifecycleHooks(names ...string) Option {
	return func(o *options) {
		o.hooks = make(map[string]bool, len(names))
		for _, n := range names {
			o.hooks[n] = true
		}
	}
}

// Result is the outcome of scanning one file.
type Result struct {
	Kind        model.FileKind
	Lines       []SourceLine
	Constructs  []Construct
	Diagnostics []Diagnostic
	// Final is the depth at the end of the file; (0, 0) for well-formed input.
	Final DepthFrame
	// UnparseableFrom is the line where an unterminated block comment or template
	// opened, or zero.
	UnparseableFrom int
}

// Count returns the number of lines of the given class.
func (r *Result) Count(class Class) int {
	n := 0

	for _, l := range r.Lines {
		if l.Class == class {
			n++
		}
	}

	return n
}

// Line returns the 1-based line n.
func (r *Result) Line(n int) (SourceLine, bool) {
	if n < 1 || n > len(r.Lines) {
		return SourceLine{}, false
	}

	return r.Lines[n-1], true
}

// Scan classifies every line of text and detects its constructs. It never
// fails: malformed input is reported through Diagnostics.
func Scan(text string, kind model.FileKind, opts ...Option) *Result {
	o := options{}
	WithLifecycleHooks(DefaultLifecycleHooks...)(&o)

	for _, opt := range opts {
		opt(&o)
	}

	s := newScan(text, kind, o)
	s.run()

	return s.finish()
}

type scan struct {
	text string
	kind model.FileKind
	syn  Syntax
	opts options

	lex   *tracker
	depth depthTracker
	det   *detector
	cur   lineBuilder
	lines []SourceLine
	diags []Diagnostic

	wordStart int
	wordLine  int
}

func newScan(text string, kind model.FileKind, o options) *scan {
	syn := SyntaxFor(kind)

	s := &scan{
		text:      text,
		kind:      kind,
		syn:       syn,
		opts:      o,
		lex:       newTracker(text, syn),
		det:       newDetector(o.hooks),
		wordStart: -1,
	}
	s.cur.reset(1, 0, DepthFrame{})

	return s
}

func (s *scan) run() {
	for i := 0; i < len(s.text); {
		if s.text[i] == '\n' {
			s.flushWord(i)
			s.endLine(i)
			i++

			continue
		}

		i += s.consume(i)
	}

	if s.cur.start < len(s.text) {
		s.flushWord(len(s.text))
		s.endLine(len(s.text))
	}
}

// consume advances over one character or delimiter at offset i.
func (s *scan) consume(i int) int {
	line := s.cur.number
	st := s.lex.advance(i, line)

	s.markLine(i, st)

	if st.mode != Normal || st.next != Normal || st.space {
		s.flushWord(i)

		switch {
		case st.holeOpen:
			s.depth.open('{')
			if s.syn.Constructs {
				s.det.openHole(s.depth.paren)
			}
		case st.holeClose:
			if s.syn.Constructs {
				s.det.closeBrace(line, i, &s.depth)
			}
			s.depth.close('}', line)
		case st.mode == Normal && st.next.IsLiteral():
			if s.syn.Constructs {
				s.det.value(line, i, &s.depth)
			}
		}

		return st.width
	}

	c := s.text[i]
	if isWordByte(c) {
		if s.wordStart < 0 {
			s.wordStart = i
			s.wordLine = line
		}

		return 1
	}

	s.flushWord(i)
	s.punct(c, i, line)

	return 1
}

func (s *scan) flushWord(end int) {
	if s.wordStart < 0 {
		return
	}

	if s.syn.Constructs {
		s.det.word(s.text[s.wordStart:end], s.wordLine, s.wordStart, &s.depth)
	}

	s.wordStart = -1
}

func (s *scan) punct(c byte, i, line int) {
	switch c {
	case '{':
		if s.syn.Constructs {
			s.det.openBrace(line, i, &s.depth)
		}
		s.depth.open(c)
	case '}':
		if s.depth.brace == 0 {
			s.depth.close(c, line)
			return
		}

		if s.syn.Constructs {
			s.det.closeBrace(line, i, &s.depth)
		}
		s.depth.close(c, line)
	case '(', '[':
		if s.syn.Constructs {
			s.det.punct(c, line, i, &s.depth)
		}
		s.depth.open(c)
	case ')', ']':
		if s.syn.Constructs {
			s.det.punct(c, line, i, &s.depth)
		}
		s.depth.close(c, line)
	default:
		if s.syn.Constructs {
			s.det.punct(c, line, i, &s.depth)
		}
	}
}

// markLine updates the classification of the current line for one step.
func (s *scan) markLine(i int, st step) {
	b := &s.cur

	switch {
	case st.mode == Normal && st.next == BlockComment:
		b.blockStyle = StyleBlock
		if s.syn.BlockOpen == "/*" && strings.HasPrefix(s.text[i:], "/**") && !strings.HasPrefix(s.text[i:], "/**/") {
			b.blockStyle = StyleDoc
		}

		b.blockLine = b.number
	case st.mode == BlockComment && st.next == Normal:
		b.marks.Closed = b.blockStyle
		b.marks.ClosedFrom = b.blockLine
	case st.mode == Normal && st.next == LineComment:
		b.marks.Line = StyleLine
		if strings.HasPrefix(s.text[i:], "///") && !strings.HasPrefix(s.text[i:], "////") {
			b.marks.Line = StyleTripleSlash
		}
	}

	if st.space {
		return
	}

	if st.comment() {
		b.comment = true
		if b.blockStyle == StyleDoc && (st.mode == BlockComment || st.next == BlockComment) {
			b.marks.Doc = true
		}

		return
	}

	b.code = true
}

func (s *scan) endLine(end int) {
	b := &s.cur
	line := b.number

	if s.syn.Constructs {
		s.det.endLine(line, &s.depth)
	}

	text := s.text[b.start:end]
	text = strings.TrimSuffix(text, "\r")

	continues := s.lex.mode == BlockComment || s.lex.mode == TemplateLiteral

	if d := s.lex.endLine(end + 1); d != DiagnosticNone {
		s.diags = append(s.diags, Diagnostic{Line: line, Kind: d})
	}

	if !continues {
		continues = s.lex.mode == SingleQuoteString || s.lex.mode == DoubleQuoteString
	}

	s.lines = append(s.lines, SourceLine{
		Number:    line,
		Text:      text,
		Class:     b.class(),
		Continues: continues,
		Start:     b.depth,
		End:       s.depth.frame(),
		Comment:   b.marks,
	})

	style, from := b.blockStyle, b.blockLine
	b.reset(line+1, end+1, s.depth.frame())

	if s.lex.mode == BlockComment {
		b.blockStyle, b.blockLine = style, from
	}
}

func (s *scan) finish() *Result {
	last := len(s.lines)

	switch s.lex.mode {
	case BlockComment:
		s.diags = append(s.diags, Diagnostic{Line: s.lex.modeLine, Kind: UnterminatedBlockComment})
	case TemplateLiteral:
		s.diags = append(s.diags, Diagnostic{Line: s.lex.modeLine, Kind: UnterminatedTemplate})
	}

	unparseable := 0
	if s.lex.mode == BlockComment || s.lex.mode == TemplateLiteral {
		unparseable = s.lex.modeLine
	} else if len(s.lex.holes) > 0 {
		unparseable = s.lex.holes[0].line
		s.diags = append(s.diags, Diagnostic{Line: unparseable, Kind: UnterminatedTemplate})
	}

	s.diags = append(s.diags, s.depth.diags...)

	r := &Result{
		Kind:            s.kind,
		Lines:           s.lines,
		Diagnostics:     s.diags,
		Final:           s.depth.frame(),
		UnparseableFrom: unparseable,
	}

	if !s.syn.Constructs {
		return r
	}

	s.det.finish(last)

	constructs := s.det.constructs
	for i := range constructs {
		c := &constructs[i]
		c.Declaration = declarationText(s.lines, c.DeclarationLine, c.OpenLine)

		if !c.Expression {
			c.BodyLines = countCode(s.lines, c.OpenLine+1, c.EndLine-1)
		}
	}

	sortConstructs(constructs)
	resolveDocs(s.lines, constructs, s.opts.lineDocs)
	r.Constructs = constructs

	return r
}

func declarationText(lines []SourceLine, from, to int) string {
	if from < 1 || to > len(lines) || from > to {
		return ""
	}

	parts := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		parts = append(parts, strings.TrimSpace(lines[n-1].Text))
	}

	return strings.Join(parts, "\n")
}

func countCode(lines []SourceLine, from, to int) int {
	n := 0

	for i := from; i <= to && i <= len(lines); i++ {
		if i >= 1 && lines[i-1].Class == Code {
			n++
		}
	}

	return n
}

func sortConstructs(constructs []Construct) {
	slices.SortStableFunc(constructs, func(a, b Construct) int {
		return cmp.Compare(a.DeclarationLine, b.DeclarationLine)
	})
}
