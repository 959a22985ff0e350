package domain

import (
	"strings"

	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

const (
	ignoreDirective     = "codeaudit:ignore"
	ignoreFileDirective = "codeaudit:ignore-file"
)

type ignoreRule struct {
	all   bool
	names map[m.AnalyzerKind]struct{}
}

func (r ignoreRule) ignores(analyzer m.AnalyzerKind) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[analyzer]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[m.AnalyzerKind]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective reads "codeaudit:ignore [analyzer, ...]" or
// "codeaudit:ignore-file [analyzer, ...]" out of the comment part of a line.
// Unknown analyzer names are dropped; no known name means every analyzer.
func parseIgnoreDirective(commentText string) (rule ignoreRule, wholeFile bool, ok bool) {
	directive := ignoreFileDirective

	i := strings.Index(commentText, directive)
	if i < 0 {
		directive = ignoreDirective
		i = strings.Index(commentText, directive)
	}

	if i < 0 {
		return ignoreRule{}, false, false
	}

	rest := commentText[i+len(directive):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '*' {
		return ignoreRule{}, false, false
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "*/"))
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "-->"))
	wholeFile = directive == ignoreFileDirective

	if rest == "" {
		return ignoreRule{all: true}, wholeFile, true
	}

	parts := strings.Split(rest, ",")
	rule = ignoreRule{names: make(map[m.AnalyzerKind]struct{}, len(parts))}

	for _, part := range parts {
		name, err := m.ParseAnalyzer(part)
		if err != nil {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, wholeFile, true
}

// ignoreIndex holds the directives of one scanned file.
type ignoreIndex struct {
	file ignoreRule
	// line maps a target line to the directives that apply to it.
	line map[int]ignoreRule
	// at maps a line to the directives written on it.
	at map[int]ignoreRule
}

func (x ignoreIndex) fileIgnores(analyzer m.AnalyzerKind) bool {
	return x.file.ignores(analyzer)
}

func (x ignoreIndex) lineIgnores(line int, analyzer m.AnalyzerKind) bool {
	if x.file.ignores(analyzer) {
		return true
	}

	r, ok := x.line[line]

	return ok && r.ignores(analyzer)
}

// constructIgnores checks the directive lines attached to c: the line before
// its declaration, the declaration line itself and its documentation block.
func (x ignoreIndex) constructIgnores(c scanner.Construct, analyzer m.AnalyzerKind) bool {
	if x.lineIgnores(c.DeclarationLine, analyzer) {
		return true
	}

	if c.Documentation == nil {
		return false
	}

	for l := c.Documentation.StartLine; l <= c.Documentation.EndLine; l++ {
		if r, ok := x.at[l]; ok && r.ignores(analyzer) {
			return true
		}
	}

	return false
}

// buildIgnoreIndex collects directives from comment lines. A directive on a
// comment-only line applies to the next line, a trailing one to its own line,
// an ignore-file directive to the whole file.
func buildIgnoreIndex(r *scanner.Result) ignoreIndex {
	idx := ignoreIndex{line: make(map[int]ignoreRule), at: make(map[int]ignoreRule)}

	for _, l := range r.Lines {
		if !hasComment(l) {
			continue
		}

		rule, wholeFile, ok := parseIgnoreDirective(l.Text)
		if !ok {
			continue
		}

		if wholeFile {
			mergeIgnoreRule(&idx.file, rule)
			continue
		}

		own := idx.at[l.Number]
		mergeIgnoreRule(&own, rule)
		idx.at[l.Number] = own

		target := l.Number
		if l.Class == scanner.CommentOnly {
			target = l.Number + 1
		}

		current := idx.line[target]
		mergeIgnoreRule(&current, rule)
		idx.line[target] = current
	}

	return idx
}

func hasComment(l scanner.SourceLine) bool {
	return l.Class == scanner.CommentOnly ||
		l.Comment.Line != scanner.StyleNone ||
		l.Comment.Closed != scanner.StyleNone
}
