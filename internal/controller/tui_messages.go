package controller

import (
	"time"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// Message types.
type tickMsg time.Time

// List item types.
type findingItem struct {
	finding
}

func (f findingItem) FilterValue() string {
	return f.path + " " + f.detail
}

type analyzerItem struct {
	kind     m.AnalyzerKind
	selected bool
}

func (a analyzerItem) FilterValue() string {
	return string(a.kind)
}
