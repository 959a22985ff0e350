package scanner

import (
	"slices"
	"strings"

	"github.com/mouse-blink/codeaudit/internal/model"
)

// DefaultCallTargets are the callees located by FindCalls when none are given.
var DefaultCallTargets = []string{"console.log"}

// Call is an occurrence of a target callee in executable code.
type Call struct {
	Target  string
	Line    int
	EndLine int
	// Start and End delimit the statement, End includes a trailing semicolon.
	Start int
	End   int
	// Statement is set when the call stands alone as a statement and can be removed.
	Statement bool
}

// CallScan holds the calls found in one file.
type CallScan struct {
	Calls []Call
}

// Statements returns the removable calls.
func (c CallScan) Statements() []Call {
	var out []Call

	for _, call := range c.Calls {
		if call.Statement {
			out = append(out, call)
		}
	}

	return out
}

// Remaining counts the calls that cannot be removed automatically.
func (c CallScan) Remaining() int {
	return len(c.Calls) - len(c.Statements())
}

const (
	clsSpace byte = iota
	clsNormal
	clsComment
	clsLiteral
)

// classify labels every byte of text with its lexical class.
func classify(text string, syn Syntax) []byte {
	cls := make([]byte, len(text))
	t := newTracker(text, syn)
	line := 1

	for i := 0; i < len(text); {
		if text[i] == '\n' {
			t.endLine(i + 1)
			line++
			i++

			continue
		}

		st := t.advance(i, line)

		var c byte

		switch {
		case st.space:
			c = clsSpace
		case st.comment():
			c = clsComment
		case st.mode == Normal && st.next == Normal:
			c = clsNormal
		default:
			c = clsLiteral
		}

		for k := i; k < i+st.width && k < len(text); k++ {
			cls[k] = c
		}

		i += st.width
	}

	return cls
}

// FindCalls locates the calls to targets (such as "console.log") in text.
// Occurrences inside strings, templates, regex literals and comments are ignored.
func FindCalls(text string, kind model.FileKind, targets []string) CallScan {
	if len(targets) == 0 {
		targets = DefaultCallTargets
	}

	syn := SyntaxFor(kind)
	if !syn.Constructs {
		return CallScan{}
	}

	cls := classify(text, syn)
	starts := lineStarts(text)
	f := callFinder{text: text, cls: cls}

	var calls []Call

	for i := 0; i < len(text); i++ {
		if cls[i] != clsNormal || !f.wordStart(i) {
			continue
		}

		for _, target := range targets {
			open, ok := f.matchTarget(i, target)
			if !ok {
				continue
			}

			call := Call{Target: target, Start: i, End: open + 1}

			if closeIdx, ok := f.closeParen(open); ok {
				call.End = closeIdx + 1
				call.End, call.Statement = f.statementEnd(call.End)
				call.Statement = call.Statement && f.statementStart(i)
			}

			call.Line = lineOf(starts, call.Start)
			call.EndLine = lineOf(starts, call.End-1)
			calls = append(calls, call)

			if call.Statement {
				i = call.End - 1
			}

			break
		}
	}

	return CallScan{Calls: calls}
}

type callFinder struct {
	text string
	cls  []byte
}

func (f callFinder) wordStart(i int) bool {
	if !isWordByte(f.text[i]) {
		return false
	}

	if i == 0 || f.cls[i-1] != clsNormal {
		return true
	}

	p := f.text[i-1]

	return !isWordByte(p) && p != '.'
}

// matchTarget matches a dotted callee at i, allowing spaces around the dots,
// and returns the offset of the opening parenthesis.
func (f callFinder) matchTarget(i int, target string) (int, bool) {
	j := i

	for n, part := range strings.Split(target, ".") {
		if n > 0 {
			j = f.skipSpace(j)
			if j >= len(f.text) || f.text[j] != '.' || f.cls[j] != clsNormal {
				return 0, false
			}

			j = f.skipSpace(j+1)
		}

		if !strings.HasPrefix(f.text[j:], part) {
			return 0, false
		}

		j += len(part)
		if j < len(f.text) && isWordByte(f.text[j]) {
			return 0, false
		}
	}

	j = f.skipSpace(j)
	if j >= len(f.text) || f.text[j] != '(' || f.cls[j] != clsNormal {
		return 0, false
	}

	return j, true
}

func (f callFinder) skipSpace(j int) int {
	for j < len(f.text) && isSpace(f.text[j]) {
		j++
	}

	return j
}

// closeParen returns the parenthesis matching the one at open.
func (f callFinder) closeParen(open int) (int, bool) {
	depth := 0

	for j := open; j < len(f.text); j++ {
		if f.cls[j] != clsNormal {
			continue
		}

		switch f.text[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}

	return 0, false
}

// statementEnd extends the span over a trailing semicolon and reports whether
// nothing but a statement boundary follows the call.
func (f callFinder) statementEnd(end int) (int, bool) {
	j := f.skipSpace(end)

	if j < len(f.text) && f.text[j] == ';' && f.cls[j] == clsNormal {
		return j + 1, true
	}

	if j >= len(f.text) || f.text[j] == '\n' || f.cls[j] == clsComment {
		return end, true
	}

	return end, f.text[j] == '}' && f.cls[j] == clsNormal
}

// statementStart reports whether the call at i begins a statement.
func (f callFinder) statementStart(i int) bool {
	newline := false
	j := i - 1

	for ; j >= 0; j-- {
		if f.text[j] == '\n' {
			newline = true
			continue
		}

		if isSpace(f.text[j]) || f.cls[j] == clsComment {
			continue
		}

		break
	}

	if j < 0 {
		return true
	}

	if f.cls[j] == clsLiteral {
		return newline
	}

	switch c := f.text[j]; {
	case c == ';' || c == '{' || c == '}':
		return true
	case !newline:
		return false
	case isWordByte(c):
		k := j
		for k > 0 && f.cls[k-1] == clsNormal && isWordByte(f.text[k-1]) {
			k--
		}

		return !controlKeywords[f.text[k:j+1]]
	case c == ')':
		open := f.openParen(j)
		if open < 0 {
			return false
		}

		k := open - 1
		for k >= 0 && (isSpace(f.text[k]) || f.text[k] == '\n') {
			k--
		}

		e := k + 1
		for k >= 0 && f.cls[k] == clsNormal && isWordByte(f.text[k]) {
			k--
		}

		return !controlKeywords[f.text[k+1:e]]
	case c == ']':
		return true
	}

	return false
}

func (f callFinder) openParen(closeIdx int) int {
	depth := 0

	for j := closeIdx; j >= 0; j-- {
		if f.cls[j] != clsNormal {
			continue
		}

		switch f.text[j] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return j
			}
		}
	}

	return -1
}

func lineStarts(text string) []int {
	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func lineOf(starts []int, offset int) int {
	n, found := slices.BinarySearch(starts, offset)
	if found {
		return n + 1
	}

	return n
}

// RemoveCalls deletes the statement calls from text. A statement that is alone
// on its lines removes those lines entirely.
func RemoveCalls(text string, calls []Call) string {
	var b strings.Builder

	b.Grow(len(text))

	pos := 0

	for _, c := range calls {
		if !c.Statement || c.Start < pos {
			continue
		}

		start, end := c.Start, c.End

		ls := strings.LastIndexByte(text[:start], '\n') + 1
		le := strings.IndexByte(text[end:], '\n')

		lineEnd := len(text)
		if le >= 0 {
			lineEnd = end + le
		}

		if strings.TrimSpace(text[ls:start]) == "" && strings.TrimSpace(text[end:lineEnd]) == "" && ls >= pos {
			start = ls
			end = lineEnd
			if end < len(text) {
				end++
			}
		} else {
			for end < len(text) && isSpace(text[end]) && text[end] != '\r' {
				end++
			}
		}

		b.WriteString(text[pos:start])
		pos = end
	}

	b.WriteString(text[pos:])

	return b.String()
}
