package scanner

import (
	"regexp"
	"strings"
)

const maxDecoratorLines = 200

var (
	modifierLine  = regexp.MustCompile(`^(?:(?:public|private|protected|static|readonly|abstract|override|async|export|default|declare)\s*)+$`)
	decoratorLine = regexp.MustCompile(`^@[\w$.]+(?:\s*\(.*\))?\s*;?$`)
)

// reverseLines iterates classified lines backwards, starting above a given line.
type reverseLines struct {
	lines []SourceLine
	next  int // 1-based number of the next line to yield
}

func (r *reverseLines) line() (SourceLine, bool) {
	if r.next < 1 || r.next > len(r.lines) {
		return SourceLine{}, false
	}

	l := r.lines[r.next-1]
	r.next--

	return l, true
}

// skipTo continues the iteration above line n.
func (r *reverseLines) skipTo(n int) {
	r.next = n - 1
}

// resolveDocs decides the documentation of every construct. A documentation
// block is claimed by the first construct, in declaration order, that finds it.
func resolveDocs(lines []SourceLine, constructs []Construct, lineDocs bool) {
	claimed := make(map[int]bool)

	for i := range constructs {
		c := &constructs[i]

		block, ok := findDocumentation(lines, c.DeclarationLine, lineDocs)
		if !ok || claimed[block.EndLine] {
			continue
		}

		claimed[block.EndLine] = true
		c.Documented = true
		c.Documentation = &block
	}
}

// findDocumentation walks back from the line above decl, skipping blank,
// decorator and modifier-only lines, and inspects the first line left.
func findDocumentation(lines []SourceLine, decl int, lineDocs bool) (DocumentationBlock, bool) {
	it := &reverseLines{lines: lines, next: decl - 1}

	for {
		l, ok := it.line()
		if !ok {
			return DocumentationBlock{}, false
		}

		switch l.Class {
		case Blank:
			continue
		case Code:
			text := strings.TrimSpace(l.Text)
			if modifierLine.MatchString(text) || decoratorLine.MatchString(text) {
				continue
			}

			if start, ok := decoratorStart(lines, l); ok {
				it.skipTo(start)
				continue
			}

			return DocumentationBlock{}, false
		case CommentOnly:
			switch {
			case l.Comment.Closed == StyleDoc:
				return DocumentationBlock{StartLine: l.Comment.ClosedFrom, EndLine: l.Number, Style: DocBlock}, true
			case l.Comment.Closed == StyleBlock:
				return DocumentationBlock{}, false
			case l.Comment.Line == StyleTripleSlash,
				lineDocs && l.Comment.Line == StyleLine:
				start := l.Number
				for start > 1 {
					prev := lines[start-2]
					if prev.Class != CommentOnly || prev.Comment.Line != l.Comment.Line || prev.Comment.Closed != StyleNone {
						break
					}

					start--
				}

				return DocumentationBlock{StartLine: start, EndLine: l.Number, Style: DocLineRun}, true
			default:
				return DocumentationBlock{}, false
			}
		}
	}
}

// decoratorStart finds the first line of a decorator call spanning several
// lines and ending at l, such as @Component({ ... }).
func decoratorStart(lines []SourceLine, l SourceLine) (int, bool) {
	text := strings.TrimSpace(l.Text)
	if !strings.HasPrefix(text, ")") && !strings.HasPrefix(text, "})") && !strings.HasPrefix(text, "]") {
		return 0, false
	}

	for n := l.Number - 1; n >= 1 && l.Number-n <= maxDecoratorLines; n-- {
		prev := lines[n-1]
		if prev.Start != l.End {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(prev.Text), "@") {
			return n, true
		}

		return 0, false
	}

	return 0, false
}
