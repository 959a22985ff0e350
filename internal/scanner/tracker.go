package scanner

type sigKind int

const (
	sigNone sigKind = iota
	sigWord
	sigPunct
	sigValue
)

// hole is an open ${ } region of a template literal.
type hole struct {
	braces int // nested braces inside the hole
	line   int // line on which the enclosing template opened
}

// step describes the characters consumed by one tracker advance.
type step struct {
	width int
	mode  Mode // mode the consumed characters belong to
	next  Mode
	space bool

	holeOpen  bool
	holeClose bool
}

// comment reports whether the consumed characters count as comment text.
func (s step) comment() bool {
	return s.mode.IsComment() || (s.mode == Normal && s.next.IsComment())
}

// tracker is the lexical mode tracker. It walks one line at a time and is
// shared by Scan and FindCalls.
type tracker struct {
	syn  Syntax
	text string

	mode     Mode
	escaped  bool
	inClass  bool
	holes    []hole
	modeLine int // line on which the current non-Normal mode was entered

	sig       sigKind
	sigStart  int
	sigEnd    int
	lineSig   bool
	lineStart int
	lineEnd   int
}

func newTracker(text string, syn Syntax) *tracker {
	t := &tracker{syn: syn, text: text}
	t.startLine(0)

	return t
}

func (t *tracker) startLine(offset int) {
	t.lineStart = offset
	t.lineEnd = len(t.text)

	for i := offset; i < len(t.text); i++ {
		if t.text[i] == '\n' {
			t.lineEnd = i
			break
		}
	}

	t.lineSig = false
}

func (t *tracker) regexAllowed() bool {
	if !t.lineSig {
		return true
	}

	switch t.sig {
	case sigNone:
		return true
	case sigValue:
		return false
	case sigWord:
		return regexKeywords[t.text[t.sigStart:t.sigEnd]]
	default:
		c := t.text[t.sigStart]
		return c != ')' && c != ']'
	}
}

func (t *tracker) noteSig(i int, c byte) {
	if isWordByte(c) {
		if t.sig == sigWord && t.sigEnd == i {
			t.sigEnd = i + 1
		} else {
			t.sig, t.sigStart, t.sigEnd = sigWord, i, i+1
		}
	} else {
		t.sig, t.sigStart, t.sigEnd = sigPunct, i, i+1
	}

	t.lineSig = true
}

// advance consumes the character (or delimiter) at offset i, which must not be a newline.
func (t *tracker) advance(i, line int) step {
	c := t.text[i]
	in := Input{Rest: t.text[i:t.lineEnd], Escaped: t.escaped, InClass: t.inClass}

	if t.mode == Normal {
		in.RegexAllowed = t.regexAllowed()

		tr := Step(Normal, t.syn, in)
		if tr.Next != Normal {
			if tr.Next.IsLiteral() {
				t.sig, t.sigStart, t.sigEnd = sigValue, i, i+tr.Width
				t.lineSig = true
			}

			t.enter(tr.Next, line)

			return step{width: tr.Width, mode: Normal, next: tr.Next}
		}

		if isSpace(c) {
			return step{width: 1, mode: Normal, next: Normal, space: true}
		}

		if n := len(t.holes); n > 0 {
			switch c {
			case '{':
				t.holes[n-1].braces++
			case '}':
				if t.holes[n-1].braces == 0 {
					h := t.holes[n-1]
					t.holes = t.holes[:n-1]
					t.enter(TemplateLiteral, h.line)
					t.sig, t.sigStart, t.sigEnd = sigValue, i, i+1

					return step{width: 1, mode: Normal, next: TemplateLiteral, holeClose: true}
				}

				t.holes[n-1].braces--
			}
		}

		t.noteSig(i, c)

		return step{width: 1, mode: Normal, next: Normal}
	}

	from := t.mode

	tr := Step(from, t.syn, in)
	if tr.Next != from {
		t.mode = tr.Next
		t.escaped = false
		t.inClass = false

		if tr.HoleOpen {
			t.holes = append(t.holes, hole{line: t.modeLine})
			t.sig, t.sigStart, t.sigEnd = sigPunct, i+1, i+2
		}

		return step{width: tr.Width, mode: from, next: tr.Next, holeOpen: tr.HoleOpen}
	}

	if from == RegexLiteral && !t.escaped {
		switch c {
		case '[':
			t.inClass = true
		case ']':
			t.inClass = false
		}
	}

	if from.IsLiteral() {
		t.escaped = c == '\\' && !t.escaped
	}

	return step{width: 1, mode: from, next: from, space: isSpace(c)}
}

func (t *tracker) enter(mode Mode, line int) {
	t.mode = mode
	t.escaped = false
	t.inClass = false
	t.modeLine = line
}

// endLine applies the end-of-line rules and prepares the next line starting at next.
func (t *tracker) endLine(next int) DiagnosticKind {
	mode, diag := EndOfLine(t.mode, t.escaped)
	t.mode = mode
	t.escaped = false
	t.inClass = false
	t.startLine(next)

	return diag
}
