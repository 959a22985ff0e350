package model

import (
	"strings"
	"time"
)

// AnalyzerKind names one of the available analyzers.
type AnalyzerKind string

const (
	// AnalyzerFileLength counts lines per file.
	AnalyzerFileLength AnalyzerKind = "file-length"
	// AnalyzerMethodLength measures function and method bodies.
	AnalyzerMethodLength AnalyzerKind = "method-length"
	// AnalyzerDocCoverage checks documentation comments on functions and methods.
	AnalyzerDocCoverage AnalyzerKind = "doc-coverage"
	// AnalyzerStrip locates (and optionally removes) debug statements.
	AnalyzerStrip AnalyzerKind = "strip"
)

var analyzerTitles = map[AnalyzerKind]string{
	AnalyzerFileLength:   "File length",
	AnalyzerMethodLength: "Method length",
	AnalyzerDocCoverage:  "Documentation coverage",
	AnalyzerStrip:        "Debug statements",
}

// DefaultAnalyzers are the read-only analyzers run by the all command.
func DefaultAnalyzers() []AnalyzerKind {
	return []AnalyzerKind{AnalyzerFileLength, AnalyzerMethodLength, AnalyzerDocCoverage}
}

// ParseAnalyzer converts a name such as "docs" or "doc-coverage" into an AnalyzerKind.
func ParseAnalyzer(name string) (AnalyzerKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "file-length", "length", "files":
		return AnalyzerFileLength, nil
	case "method-length", "methods":
		return AnalyzerMethodLength, nil
	case "doc-coverage", "docs", "jsdoc":
		return AnalyzerDocCoverage, nil
	case "strip", "console", "console-log":
		return AnalyzerStrip, nil
	default:
		return "", &UnknownAnalyzerError{Name: name}
	}
}

// Title returns the heading used for the analyzer in reports.
func (a AnalyzerKind) Title() string {
	if t, ok := analyzerTitles[a]; ok {
		return t
	}

	return string(a)
}

// LineCounts holds the per-file line statistics.
type LineCounts struct {
	Total    int `yaml:"total"`
	NonEmpty int `yaml:"non_empty"`
	Comment  int `yaml:"comment"`
	Doc      int `yaml:"doc"`
	Code     int `yaml:"code"`
}

// Add accumulates other into c.
func (c *LineCounts) Add(other LineCounts) {
	c.Total += other.Total
	c.NonEmpty += other.NonEmpty
	c.Comment += other.Comment
	c.Doc += other.Doc
	c.Code += other.Code
}

// FileLengthEntry is one file of the file length report.
type FileLengthEntry struct {
	Path   Path       `yaml:"path"`
	Kind   FileKind   `yaml:"kind"`
	Counts LineCounts `yaml:"counts"`
}

// FileLengthReport lists the files whose total line count exceeds the threshold.
type FileLengthReport struct {
	Threshold  int               `yaml:"threshold"`
	Top        int               `yaml:"top"`
	TotalFiles int               `yaml:"total_files"`
	KindCounts map[FileKind]int  `yaml:"kind_counts"`
	Totals     LineCounts        `yaml:"totals"`
	Files      []FileLengthEntry `yaml:"files"`
}

// MethodEntry is one function or method found by the method length analyzer.
type MethodEntry struct {
	Path        Path   `yaml:"path"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	StartLine   int    `yaml:"start_line"`
	EndLine     int    `yaml:"end_line"`
	BodyLines   int    `yaml:"body_lines"`
	Declaration string `yaml:"declaration"`
}

// MethodLengthReport lists the constructs whose body exceeds the threshold.
type MethodLengthReport struct {
	Threshold     int           `yaml:"threshold"`
	Top           int           `yaml:"top"`
	TotalMethods  int           `yaml:"total_methods"`
	FilesWithLong int           `yaml:"files_with_long"`
	Average       float64       `yaml:"average"`
	Methods       []MethodEntry `yaml:"methods"`
}

// DocEntry is an undocumented function or method.
type DocEntry struct {
	Path        Path   `yaml:"path"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Line        int    `yaml:"line"`
	Declaration string `yaml:"declaration"`
}

// DocGroup aggregates undocumented constructs of one kind.
type DocGroup struct {
	Kind     string     `yaml:"kind"`
	Count    int        `yaml:"count"`
	Examples []DocEntry `yaml:"examples"`
}

// DocFileEntry counts undocumented constructs of a single file.
type DocFileEntry struct {
	Path    Path     `yaml:"path"`
	Missing int      `yaml:"missing"`
	Names   []string `yaml:"names"`
}

// DocCoverageReport summarises documentation coverage.
type DocCoverageReport struct {
	Top        int            `yaml:"top"`
	Eligible   int            `yaml:"eligible"`
	Documented int            `yaml:"documented"`
	Coverage   float64        `yaml:"coverage"`
	Missing    []DocEntry     `yaml:"missing"`
	Groups     []DocGroup     `yaml:"groups"`
	Files      []DocFileEntry `yaml:"files"`
}

// StripEntry holds the debug statement counts of one file.
type StripEntry struct {
	Path      Path  `yaml:"path"`
	Original  int   `yaml:"original"`
	Removed   int   `yaml:"removed"`
	Remaining int   `yaml:"remaining"`
	Lines     []int `yaml:"lines"`
	Modified  bool  `yaml:"modified"`
}

// StripReport summarises a debug statement run.
type StripReport struct {
	Top           int           `yaml:"top"`
	Targets       []string      `yaml:"targets"`
	Applied       bool          `yaml:"applied"`
	BackupDir     Path          `yaml:"backup_dir,omitempty"`
	Original      int           `yaml:"original"`
	Removed       int           `yaml:"removed"`
	Remaining     int           `yaml:"remaining"`
	FilesModified int           `yaml:"files_modified"`
	Files         []StripEntry  `yaml:"files"`
	Failed        []SkippedFile `yaml:"failed,omitempty"`
}

// Envelope is a single persisted analysis run.
type Envelope struct {
	ID            string              `yaml:"id"`
	Analyzer      AnalyzerKind        `yaml:"analyzer"`
	GeneratedAt   time.Time           `yaml:"generated_at"`
	Roots         []Path              `yaml:"roots"`
	Excluded      []string            `yaml:"excluded,omitempty"`
	FilesAnalyzed int                 `yaml:"files_analyzed"`
	Skipped       []SkippedFile       `yaml:"skipped,omitempty"`
	FileLength    *FileLengthReport   `yaml:"file_length,omitempty"`
	MethodLength  *MethodLengthReport `yaml:"method_length,omitempty"`
	DocCoverage   *DocCoverageReport  `yaml:"doc_coverage,omitempty"`
	Strip         *StripReport        `yaml:"strip,omitempty"`
}
