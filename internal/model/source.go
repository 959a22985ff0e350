package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// FileKind identifies the language family of a source file.
type FileKind string

const (
	// KindUnknown marks files no analyzer understands.
	KindUnknown FileKind = ""
	// KindTypeScript covers .ts, .tsx, .mts and .cts files.
	KindTypeScript FileKind = "typescript"
	// KindJavaScript covers .js, .jsx, .mjs and .cjs files.
	KindJavaScript FileKind = "javascript"
	// KindHTML covers .html and .htm templates.
	KindHTML FileKind = "html"
	// KindCSS covers plain stylesheets.
	KindCSS FileKind = "css"
	// KindSCSS covers .scss stylesheets.
	KindSCSS FileKind = "scss"
	// KindSASS covers indented .sass stylesheets.
	KindSASS FileKind = "sass"
)

var kindByExt = map[string]FileKind{
	".ts":   KindTypeScript,
	".tsx":  KindTypeScript,
	".mts":  KindTypeScript,
	".cts":  KindTypeScript,
	".js":   KindJavaScript,
	".jsx":  KindJavaScript,
	".mjs":  KindJavaScript,
	".cjs":  KindJavaScript,
	".html": KindHTML,
	".htm":  KindHTML,
	".css":  KindCSS,
	".scss": KindSCSS,
	".sass": KindSASS,
}

var kindLabels = map[FileKind]string{
	KindTypeScript: "TypeScript",
	KindJavaScript: "JavaScript",
	KindHTML:       "HTML",
	KindCSS:        "CSS",
	KindSCSS:       "SCSS",
	KindSASS:       "SASS",
}

// AllKinds lists every known kind in display order.
func AllKinds() []FileKind {
	return []FileKind{KindTypeScript, KindJavaScript, KindHTML, KindCSS, KindSCSS, KindSASS}
}

// KindForPath returns the kind implied by the file extension.
func KindForPath(path Path) FileKind {
	return kindByExt[strings.ToLower(filepath.Ext(string(path)))]
}

// Label returns the human readable name of the kind.
func (k FileKind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}

	return "Unknown"
}

// IsScript reports whether files of this kind contain functions and methods.
func (k FileKind) IsScript() bool {
	return k == KindTypeScript || k == KindJavaScript
}

// ParseKinds converts names such as "ts" or "typescript" into kinds.
func ParseKinds(names []string) ([]FileKind, error) {
	kinds := make([]FileKind, 0, len(names))

	for _, name := range names {
		n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
		if n == "" {
			continue
		}

		if k, ok := kindByExt["."+n]; ok {
			kinds = append(kinds, k)
			continue
		}

		k := FileKind(n)
		if _, ok := kindLabels[k]; !ok {
			return nil, &UnknownKindError{Name: name}
		}

		kinds = append(kinds, k)
	}

	return kinds, nil
}

// SourceFile is a file selected for analysis.
type SourceFile struct {
	Path Path     `yaml:"path"`
	Rel  Path     `yaml:"rel"`
	Kind FileKind `yaml:"kind"`
	Hash string   `yaml:"hash,omitempty"`
	Size int64    `yaml:"size"`
}

// SkippedFile records a file that could not be analyzed and why.
type SkippedFile struct {
	Path   Path   `yaml:"path"`
	Reason string `yaml:"reason"`
}
