package scanner

// Kind categorises a detected construct.
type Kind int

const (
	KindMethod Kind = iota
	KindConstructor
	KindArrow
	KindGetter
	KindSetter
	KindLifecycleHook
	KindFunction
	KindOther
)

var kindLabels = [...]string{
	KindMethod:        "Method",
	KindConstructor:   "Constructor",
	KindArrow:         "Arrow Function",
	KindGetter:        "Getter",
	KindSetter:        "Setter",
	KindLifecycleHook: "Lifecycle Hook",
	KindFunction:      "Function",
	KindOther:         "Other",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindLabels) {
		return kindLabels[k]
	}

	return "Unknown"
}

// DocStyle tells how a documentation block was written.
type DocStyle int

const (
	// DocBlock is a /** ... */ comment.
	DocBlock DocStyle = iota
	// DocLineRun is a run of /// (or, when enabled, //) comment lines.
	DocLineRun
)

// DocumentationBlock is the comment associated with a construct.
type DocumentationBlock struct {
	StartLine int
	EndLine   int
	Style     DocStyle
}

// Construct is a function-like region with its boundaries.
type Construct struct {
	Name      string
	Kind      Kind
	Modifiers []string
	// DeclarationLine is the line of the first declaration token, after decorators.
	DeclarationLine int
	// OpenLine is the line of the opening brace, or of the arrow for expression bodies.
	OpenLine int
	EndLine  int
	// DeclaredAtDepth is the brace depth just before the body opened.
	DeclaredAtDepth int
	Declaration     string
	BodyLines       int
	Expression      bool
	Unterminated    bool
	Documented      bool
	Documentation   *DocumentationBlock
}

// DisplayName returns the construct name or a placeholder for anonymous constructs.
func (c Construct) DisplayName() string {
	if c.Name == "" {
		return "<anonymous>"
	}

	return c.Name
}

type braceKind int

const (
	braceBlock braceKind = iota
	braceConstruct
	braceClass
	braceHole
)

type braceFrame struct {
	kind      braceKind
	construct int
	saved     []token
	savedBase int
	expr      bool
}

// pendingArrow is an expression-bodied arrow waiting for its end.
type pendingArrow struct {
	construct int
	brace     int
	paren     int
	bracket   int
}

// detector is the construct boundary detector.
type detector struct {
	hooks map[string]bool

	head       []token
	headBase   int
	frames     []braceFrame
	arrows     []pendingArrow
	constructs []Construct
}

func newDetector(hooks map[string]bool) *detector {
	return &detector{hooks: hooks}
}

func (d *detector) resetHead(paren int) {
	d.head = nil
	d.headBase = paren
}

func (d *detector) push(t token) {
	if len(d.head) >= maxHead {
		d.head = append(d.head[:0:0], d.head[len(d.head)/2:]...)
	}

	d.head = append(d.head, t)
}

func (d *detector) last() (token, bool) {
	if len(d.head) == 0 {
		return token{}, false
	}

	return d.head[len(d.head)-1], true
}

// before runs ahead of every significant token: it ends expression arrows that
// the token closes and opens an expression arrow when the token follows "=>".
func (d *detector) before(t token, depth *depthTracker) {
	for len(d.arrows) > 0 {
		a := d.arrows[len(d.arrows)-1]

		var ends bool

		switch t.text {
		case ";", ",":
			ends = depth.brace == a.brace && depth.paren == a.paren && depth.bracket == a.bracket
		case ")":
			ends = depth.paren <= a.paren
		case "]":
			ends = depth.bracket <= a.bracket
		case "}":
			ends = depth.brace <= a.brace
		}

		if !ends {
			break
		}

		d.endArrow(t.line)
	}

	if prev, ok := d.last(); ok && prev.text == arrowTok && t.text != "{" {
		if m, ok := matchDeclaration(d.head, d.hooks); ok {
			idx := d.add(m, prev.line, depth.brace)
			d.constructs[idx].Expression = true
			d.arrows = append(d.arrows, pendingArrow{
				construct: idx,
				brace:     depth.brace,
				paren:     depth.paren,
				bracket:   depth.bracket,
			})
		}
	}
}

func (d *detector) endArrow(line int) {
	a := d.arrows[len(d.arrows)-1]
	d.arrows = d.arrows[:len(d.arrows)-1]
	d.constructs[a.construct].EndLine = line
}

// endLine ends expression arrows whose body is complete at the end of a line.
func (d *detector) endLine(line int, depth *depthTracker) {
	if len(d.arrows) == 0 {
		return
	}

	if t, ok := d.last(); ok && continuesExpression(t) {
		return
	}

	for len(d.arrows) > 0 {
		a := d.arrows[len(d.arrows)-1]
		if depth.brace != a.brace || depth.paren != a.paren || depth.bracket != a.bracket {
			return
		}

		d.endArrow(line)
	}
}

func continuesExpression(t token) bool {
	if t.kind != tokPunct {
		return false
	}

	switch t.text {
	case ")", "]", bracesTok:
		return false
	}

	return true
}

func (d *detector) add(m declaration, openLine, depth int) int {
	c := Construct{
		Name:            m.name,
		Kind:            m.kind,
		Modifiers:       m.modifiers,
		DeclarationLine: d.head[m.start].line,
		OpenLine:        openLine,
		DeclaredAtDepth: depth,
	}
	d.constructs = append(d.constructs, c)

	return len(d.constructs) - 1
}

func (d *detector) word(text string, line, pos int, depth *depthTracker) {
	t := token{text: text, kind: tokWord, line: line, pos: pos}
	d.before(t, depth)
	d.push(t)
}

func (d *detector) value(line, pos int, depth *depthTracker) {
	t := token{text: valueTok, kind: tokValue, line: line, pos: pos}
	d.before(t, depth)
	d.push(t)
}

// punct handles every punctuation character except braces. The depth tracker
// has not yet seen c.
func (d *detector) punct(c byte, line, pos int, depth *depthTracker) {
	if c == '>' {
		if prev, ok := d.last(); ok && prev.text == "=" && prev.pos == pos-1 {
			d.head[len(d.head)-1].text = arrowTok
			return
		}
	}

	t := token{text: string(c), kind: tokPunct, line: line, pos: pos}
	d.before(t, depth)

	switch c {
	case ';':
		if depth.paren <= d.headBase {
			d.resetHead(depth.paren)
			return
		}
	case ')':
		if depth.paren-1 < d.headBase && depth.paren > 0 {
			d.headBase = depth.paren - 1
		}
	}

	d.push(t)
}

// openBrace handles "{". The depth tracker has not yet seen it.
func (d *detector) openBrace(line, pos int, depth *depthTracker) {
	t := token{text: "{", kind: tokPunct, line: line, pos: pos}
	d.before(t, depth)

	frame := braceFrame{saved: d.head, savedBase: d.headBase, expr: expressionContext(d.head)}

	if m, ok := matchDeclaration(d.head, d.hooks); ok {
		frame.kind = braceConstruct
		frame.construct = d.add(m, line, depth.brace)
	} else if isClassHead(d.head) {
		frame.kind = braceClass
	}

	d.frames = append(d.frames, frame)
	d.resetHead(depth.paren)
}

// openHole handles the "${" of a template literal.
func (d *detector) openHole(paren int) {
	d.frames = append(d.frames, braceFrame{kind: braceHole, saved: d.head, savedBase: d.headBase})
	d.resetHead(paren)
}

// closeBrace handles "}" that the depth tracker accepted (not stray). The
// depth tracker has not yet seen it.
func (d *detector) closeBrace(line, pos int, depth *depthTracker) {
	if len(d.frames) == 0 {
		return
	}

	top := d.frames[len(d.frames)-1]
	if top.kind != braceHole {
		d.before(token{text: "}", kind: tokPunct, line: line, pos: pos}, depth)
	} else {
		for len(d.arrows) > 0 && d.arrows[len(d.arrows)-1].brace >= depth.brace {
			d.endArrow(line)
		}
	}

	d.frames = d.frames[:len(d.frames)-1]

	if top.kind == braceConstruct {
		d.constructs[top.construct].EndLine = line
	}

	switch {
	case top.kind == braceHole:
		d.head = top.saved
		d.headBase = top.savedBase
	case top.expr:
		d.head = top.saved
		d.headBase = top.savedBase
		d.push(token{text: bracesTok, kind: tokPunct, line: line, pos: pos})
	default:
		d.resetHead(depth.paren)
	}
}

// finish closes everything still open at the end of the file.
func (d *detector) finish(lastLine int) {
	for len(d.arrows) > 0 {
		d.endArrow(lastLine)
	}

	for _, f := range d.frames {
		if f.kind == braceConstruct {
			c := &d.constructs[f.construct]
			c.EndLine = lastLine
			c.Unterminated = true
		}
	}

	d.frames = nil
}
