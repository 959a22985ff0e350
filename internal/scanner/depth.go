package scanner

// DepthFrame is the nesting depth at a point of the file.
type DepthFrame struct {
	Brace int `yaml:"brace"`
	Paren int `yaml:"paren"`
}

// depthTracker counts Normal-mode braces and parentheses. Brackets are tracked
// too because expression arrows end at an enclosing bracket.
type depthTracker struct {
	brace   int
	paren   int
	bracket int
	diags   []Diagnostic
}

func (d *depthTracker) frame() DepthFrame {
	return DepthFrame{Brace: d.brace, Paren: d.paren}
}

// open records an opening delimiter.
func (d *depthTracker) open(c byte) {
	switch c {
	case '{':
		d.brace++
	case '(':
		d.paren++
	case '[':
		d.bracket++
	}
}

// close records a closing delimiter. It reports false for a stray closer,
// which leaves the depth clamped at zero.
func (d *depthTracker) close(c byte, line int) bool {
	switch c {
	case '}':
		if d.brace == 0 {
			d.diags = append(d.diags, Diagnostic{Line: line, Kind: StrayClosingBrace})
			return false
		}

		d.brace--
	case ')':
		if d.paren == 0 {
			d.diags = append(d.diags, Diagnostic{Line: line, Kind: StrayClosingParen})
			return false
		}

		d.paren--
	case ']':
		if d.bracket == 0 {
			return false
		}

		d.bracket--
	}

	return true
}
