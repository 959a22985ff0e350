package scanner

type tokenKind int

const (
	tokWord tokenKind = iota
	tokPunct
	tokValue
)

// token is a Normal-mode token of the declaration head.
type token struct {
	text string
	kind tokenKind
	line int
	pos  int
}

const (
	maxHead     = 512
	maxLookback = 256
)

// A few tokens carry meaning of their own in the head.
const (
	arrowTok  = "=>"
	bracesTok = "{}"
	valueTok  = `""`
)

var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true, "with": true,
	"do": true, "else": true, "try": true, "finally": true, "return": true, "typeof": true,
	"new": true, "super": true, "this": true, "import": true, "await": true, "yield": true,
	"delete": true, "void": true, "throw": true, "case": true, "in": true, "of": true,
	"instanceof": true, "class": true, "interface": true, "enum": true, "namespace": true,
	"module": true, "type": true,
}

var methodModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "static": true, "readonly": true,
	"abstract": true, "override": true, "async": true, "declare": true, "export": true,
	"default": true, "accessor": true, "get": true, "set": true, "*": true,
}

var declarators = map[string]bool{
	"const": true, "let": true, "var": true,
	"public": true, "private": true, "protected": true, "static": true, "readonly": true,
	"export": true, "default": true, "declare": true, "override": true,
}

// Punctuation that may not precede a method-shaped name.
var rejectBefore = map[string]bool{
	".": true, "=": true, "?": true, "!": true, "+": true, "-": true, "&": true,
	"|": true, "<": true, ">": true, "%": true, "^": true, "~": true, "/": true,
}

var expressionKeywords = map[string]bool{
	"return": true, "yield": true, "await": true, "typeof": true, "void": true,
	"throw": true, "case": true, "in": true, "of": true, "new": true, "delete": true,
	"instanceof": true, "default": true,
}

// declaration is the result of matching a head against a declaration shape.
type declaration struct {
	name      string
	kind      Kind
	modifiers []string
	start     int // index of the first head token of the declaration
}

// expressionContext reports whether a brace following head opens an expression,
// such as an object literal or an arrow body, rather than a statement block.
func expressionContext(head []token) bool {
	if len(head) == 0 {
		return false
	}

	t := head[len(head)-1]

	switch t.kind {
	case tokWord:
		return expressionKeywords[t.text]
	case tokValue:
		return false
	}

	switch t.text {
	case ")", "]", bracesTok:
		return false
	}

	return true
}

// isClassHead reports whether a brace following head opens a class body.
func isClassHead(head []token) bool {
	for i, t := range head {
		if t.kind == tokWord && t.text == "class" && (i == 0 || head[i-1].text != ".") {
			return true
		}
	}

	return false
}

// matchOpen returns the index of the opener matching the closer at index close.
func matchOpen(head []token, close int, open, shut string) int {
	depth := 0

	for i := close; i >= 0 && close-i <= maxLookback; i-- {
		switch head[i].text {
		case shut:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// skipGenerics steps back over a <...> type parameter list ending at index i.
func skipGenerics(head []token, i int) int {
	if i < 0 || head[i].text != ">" {
		return i
	}

	return matchOpen(head, i, "<", ">") - 1
}

// paramsClose finds the ")" that closes a parameter list at the tail of
// head[:end]. Anything after it must be a return type annotation.
func paramsClose(head []token, end int) int {
	for i := end - 1; i >= 0 && end-i <= maxLookback; i-- {
		switch head[i].text {
		case ")":
			if i == end-1 || head[i+1].text == ":" {
				return i
			}

			if i = matchOpen(head, i, "(", ")"); i < 0 {
				return -1
			}
		case "=", ";", arrowTok:
			return -1
		}
	}

	return -1
}

// matchDeclaration matches the tail of head against the function and method
// shapes. It is called when a brace opens, or with the first token after an arrow.
func matchDeclaration(head []token, hooks map[string]bool) (declaration, bool) {
	n := len(head)
	if n == 0 {
		return declaration{}, false
	}

	if head[n-1].text == arrowTok {
		return matchArrow(head, n-1)
	}

	closeIdx := paramsClose(head, n)
	if closeIdx < 0 || !bodyFollows(head[closeIdx+1:]) {
		return declaration{}, false
	}

	openIdx := matchOpen(head, closeIdx, "(", ")")
	if openIdx < 0 {
		return declaration{}, false
	}

	j := skipGenerics(head, openIdx-1)
	if j < 0 {
		return declaration{}, false
	}

	nameTok := head[j]

	if nameTok.text == "]" {
		k := matchOpen(head, j, "[", "]")
		if k < 0 {
			return declaration{}, false
		}

		return finishMethod(head, k-1, "", hooks, true)
	}

	if nameTok.kind != tokWord || isDigit(nameTok.text[0]) {
		return declaration{}, false
	}

	if nameTok.text == "function" {
		d := declaration{kind: KindFunction, start: j}
		d.modifiers, d.start = collectModifiers(head, j-1, methodModifiers, j)
		bindName(head, &d)

		return d, true
	}

	if controlKeywords[nameTok.text] {
		return declaration{}, false
	}

	return finishMethod(head, j-1, nameTok.text, hooks, false)
}

// finishMethod completes a method-shaped match whose name token sits at k+1.
func finishMethod(head []token, k int, name string, hooks map[string]bool, computed bool) (declaration, bool) {
	d := declaration{name: name, kind: KindMethod, start: k + 1}

	if k >= 0 && head[k].text == "*" {
		d.modifiers = append(d.modifiers, "*")
		k--
	}

	if k >= 0 && head[k].text == "function" {
		d.kind = KindFunction
		d.start = k
		k--
	}

	mods, start := collectModifiers(head, k, methodModifiers, d.start)
	d.modifiers = append(mods, d.modifiers...)
	d.start = start

	if p := start - 1; p >= 0 {
		prev := head[p]
		if (prev.kind == tokPunct && rejectBefore[prev.text]) ||
			(prev.kind == tokWord && (expressionKeywords[prev.text] || controlKeywords[prev.text])) {
			if d.kind != KindFunction {
				return declaration{}, false
			}
		}
	}

	switch {
	case computed:
		d.kind = KindOther
	case d.kind == KindFunction:
	case name == "constructor":
		d.kind = KindConstructor
	case hasModifier(d.modifiers, "get"):
		d.kind = KindGetter
	case hasModifier(d.modifiers, "set"):
		d.kind = KindSetter
	case hooks[name]:
		d.kind = KindLifecycleHook
	}

	return d, true
}

// matchArrow matches `[async] (params)[: T] =>`, `x =>` and the name the arrow is bound to.
func matchArrow(head []token, arrow int) (declaration, bool) {
	j := arrow - 1
	if j < 0 {
		return declaration{}, false
	}

	var params int

	switch {
	case head[j].kind == tokWord && (j < 2 || head[j-1].text != ":" || head[j-2].text != ")"):
		params = j
	default:
		closeIdx := paramsClose(head, arrow)
		if closeIdx < 0 {
			return declaration{}, false
		}

		openIdx := matchOpen(head, closeIdx, "(", ")")
		if openIdx < 0 {
			return declaration{}, false
		}

		params = skipGenerics(head, openIdx-1) + 1
		if params < 0 {
			return declaration{}, false
		}
	}

	d := declaration{kind: KindArrow, start: params}

	if k := params - 1; k >= 0 && head[k].text == "async" {
		d.modifiers = []string{"async"}
		d.start = k
	}

	bindName(head, &d)

	return d, true
}

// bindName names an anonymous function or arrow after the variable, field or
// object key it is assigned to.
func bindName(head []token, d *declaration) {
	k := d.start - 1
	if k < 0 {
		return
	}

	switch head[k].text {
	case "=":
		if k > 0 && head[k-1].kind == tokPunct && head[k-1].text != "]" && head[k-1].text != ")" && head[k-1].text != ">" {
			// compound assignment or comparison
			return
		}

		name, start, mods := assignedName(head, k)
		d.name = name
		d.start = start
		d.modifiers = append(mods, d.modifiers...)
	case ":":
		if k > 0 && head[k-1].kind == tokWord && !controlKeywords[head[k-1].text] {
			d.name = head[k-1].text
			d.start = k - 1
		}
	}
}

// bodyFollows reports whether the tokens between a parameter list and a brace
// form a complete return type, so that the brace opens a body and not a type literal.
func bodyFollows(tail []token) bool {
	if len(tail) == 0 {
		return true
	}

	angle := 0

	for _, t := range tail {
		switch t.text {
		case "<":
			angle++
		case ">":
			angle--
		}
	}

	switch tail[len(tail)-1].text {
	case ":", "|", "&", "<", ",", "?":
		return false
	}

	return angle == 0
}

// assignedName returns the name bound by `name =` or `name: Type =` ending at eq.
func assignedName(head []token, eq int) (string, int, []string) {
	segStart := eq

	for segStart > 0 && eq-segStart < maxLookback {
		t := head[segStart-1].text
		if t == "," || t == ";" || t == "(" || t == bracesTok || t == "=" {
			break
		}

		segStart--
	}

	// drop the tail of a decorator call such as @Input()
	for segStart < eq && head[segStart].text == ")" {
		segStart++
	}

	name := ""
	nameIdx := -1
	depth := 0

	for i := segStart; i < eq; i++ {
		switch head[i].text {
		case "(", "<", "[":
			depth++
		case ")", ">", "]":
			depth--
		case ":":
			if depth == 0 && nameIdx < 0 && i > segStart && head[i-1].kind == tokWord {
				nameIdx = i - 1
			}
		}
	}

	if nameIdx < 0 {
		for i := eq - 1; i >= segStart; i-- {
			if head[i].kind == tokWord {
				nameIdx = i
				break
			}
		}
	}

	if nameIdx >= 0 {
		name = head[nameIdx].text
	}

	var mods []string

	for i := segStart; i < eq && i < nameIdx; i++ {
		if head[i].kind == tokWord && declarators[head[i].text] && head[i].text != "const" &&
			head[i].text != "let" && head[i].text != "var" {
			mods = append(mods, head[i].text)
		}
	}

	return name, segStart, mods
}

// collectModifiers walks back from index k over modifier words.
func collectModifiers(head []token, k int, set map[string]bool, start int) ([]string, int) {
	var mods []string

	for ; k >= 0 && start-k <= maxLookback; k-- {
		t := head[k]
		if !set[t.text] {
			break
		}

		mods = append([]string{t.text}, mods...)
		start = k
	}

	return mods, start
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}

	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
