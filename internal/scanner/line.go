package scanner

// Class is the classification of a physical line.
type Class int

const (
	// Blank lines hold only whitespace.
	Blank Class = iota
	// CommentOnly lines hold comment text and nothing else.
	CommentOnly
	// Code lines hold at least one character outside a comment.
	Code
)

func (c Class) String() string {
	switch c {
	case Blank:
		return "blank"
	case CommentOnly:
		return "comment"
	default:
		return "code"
	}
}

// CommentStyle distinguishes plain comments from documentation comments.
type CommentStyle int

const (
	StyleNone CommentStyle = iota
	StyleBlock
	StyleDoc
	StyleLine
	StyleTripleSlash
)

// CommentMarks records the comment boundaries found on a line.
type CommentMarks struct {
	// Closed is the style of the last block comment that closed on the line.
	Closed CommentStyle
	// ClosedFrom is the line on which that block comment opened.
	ClosedFrom int
	// Line is StyleLine or StyleTripleSlash when the line carries a line comment.
	Line CommentStyle
	// Doc is set when the line holds text of a /** */ block.
	Doc bool
}

// SourceLine is one classified physical line.
type SourceLine struct {
	Number int
	Text   string
	Class  Class
	// Continues is set when the line ends inside a block comment or template literal.
	Continues bool
	Start     DepthFrame
	End       DepthFrame
	Comment   CommentMarks
}

// lineBuilder accumulates the classification of the line being scanned.
type lineBuilder struct {
	number     int
	start      int
	code       bool
	comment    bool
	depth      DepthFrame
	marks      CommentMarks
	blockStyle CommentStyle
	blockLine  int
}

func (b *lineBuilder) class() Class {
	switch {
	case b.code:
		return Code
	case b.comment:
		return CommentOnly
	default:
		return Blank
	}
}

func (b *lineBuilder) reset(number, start int, depth DepthFrame) {
	b.number = number
	b.start = start
	b.code = false
	b.comment = false
	b.depth = depth
	b.marks = CommentMarks{}
	b.blockStyle = StyleNone
	b.blockLine = 0
}
