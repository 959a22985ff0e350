package domain

import (
	"cmp"
	"math"
	"slices"
	"strings"

	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

const docGroupExamples = 3

// Settings carries the analyzer thresholds and options.
type Settings struct {
	FileThreshold   int
	FileTop         int
	MethodThreshold int
	MethodTop       int
	DocTop          int
	IncludeArrows   bool
	LineCommentDocs bool
	TestCallbacks   []string
	LifecycleHooks  []string
	StripTargets    []string
	StripTop        int
	BackupDir       m.Path
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		FileThreshold:   400,
		FileTop:         10,
		MethodThreshold: 14,
		MethodTop:       10,
		DocTop:          10,
		TestCallbacks:   []string{"describe", "it", "test", "beforeEach", "afterEach", "beforeAll", "afterAll"},
		StripTargets:    append([]string(nil), scanner.DefaultCallTargets...),
		StripTop:        10,
		BackupDir:       ".codeaudit-backups",
	}
}

// scanOptions converts the settings into scanner options and a cache variant.
func (s Settings) scanOptions() ([]scanner.Option, string) {
	var (
		opts    []scanner.Option
		variant []string
	)

	if s.LineCommentDocs {
		opts = append(opts, scanner.WithLineCommentDocs())
		variant = append(variant, "line-docs")
	}

	if len(s.LifecycleHooks) > 0 {
		opts = append(opts, scanner.WithLifecycleHooks(s.LifecycleHooks...))
		variant = append(variant, "hooks="+strings.Join(s.LifecycleHooks, ","))
	}

	return opts, strings.Join(variant, ";")
}

// ScannedFile is a source file together with its scan result.
type ScannedFile struct {
	Source m.SourceFile
	Result *scanner.Result
	text   string
	ignore ignoreIndex
}

// NewScannedFile pairs a source with its scan result and indexes its ignore directives.
func NewScannedFile(source m.SourceFile, result *scanner.Result) ScannedFile {
	return ScannedFile{Source: source, Result: result, ignore: buildIgnoreIndex(result)}
}

// CountLines computes the line statistics of a scan result. Doc lines are the
// comment lines of /** */ blocks and /// runs.
func CountLines(r *scanner.Result) m.LineCounts {
	c := m.LineCounts{Total: len(r.Lines)}

	for _, l := range r.Lines {
		switch l.Class {
		case scanner.Blank:
			continue
		case scanner.CommentOnly:
			c.Comment++

			if l.Comment.Doc || l.Comment.Line == scanner.StyleTripleSlash {
				c.Doc++
			}
		case scanner.Code:
			c.Code++
		}

		c.NonEmpty++
	}

	return c
}

// FileLength reports files whose total line count exceeds threshold,
// largest first.
func FileLength(files []ScannedFile, threshold, top int) *m.FileLengthReport {
	report := &m.FileLengthReport{
		Threshold:  threshold,
		Top:        top,
		TotalFiles: len(files),
		KindCounts: make(map[m.FileKind]int),
		Files:      []m.FileLengthEntry{},
	}

	for _, f := range files {
		counts := CountLines(f.Result)
		report.KindCounts[f.Source.Kind]++
		report.Totals.Add(counts)

		if counts.Total <= threshold || f.ignore.fileIgnores(m.AnalyzerFileLength) {
			continue
		}

		report.Files = append(report.Files, m.FileLengthEntry{
			Path:   f.Source.Rel,
			Kind:   f.Source.Kind,
			Counts: counts,
		})
	}

	slices.SortStableFunc(report.Files, func(a, b m.FileLengthEntry) int {
		if c := cmp.Compare(b.Counts.Total, a.Counts.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Path, b.Path)
	})

	return report
}

// MethodLength reports constructs whose body exceeds threshold code lines,
// longest first. Expression-bodied arrows have no body and never qualify.
func MethodLength(files []ScannedFile, threshold, top int) *m.MethodLengthReport {
	report := &m.MethodLengthReport{
		Threshold: threshold,
		Top:       top,
		Methods:   []m.MethodEntry{},
	}

	withLong := make(map[m.Path]struct{})
	total := 0

	for _, f := range files {
		for _, c := range f.Result.Constructs {
			if c.Expression || c.BodyLines <= threshold {
				continue
			}

			if f.ignore.constructIgnores(c, m.AnalyzerMethodLength) {
				continue
			}

			report.Methods = append(report.Methods, m.MethodEntry{
				Path:        f.Source.Rel,
				Name:        c.DisplayName(),
				Kind:        c.Kind.String(),
				StartLine:   c.DeclarationLine,
				EndLine:     c.EndLine,
				BodyLines:   c.BodyLines,
				Declaration: c.Declaration,
			})
			withLong[f.Source.Rel] = struct{}{}
			total += c.BodyLines
		}
	}

	slices.SortStableFunc(report.Methods, func(a, b m.MethodEntry) int {
		if c := cmp.Compare(b.BodyLines, a.BodyLines); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}

		return cmp.Compare(a.StartLine, b.StartLine)
	})

	report.TotalMethods = len(report.Methods)
	report.FilesWithLong = len(withLong)

	if report.TotalMethods > 0 {
		report.Average = round1(float64(total) / float64(report.TotalMethods))
	}

	return report
}

// DocOptions selects the constructs that need documentation.
type DocOptions struct {
	Top           int
	IncludeArrows bool
	TestCallbacks []string
}

// docEligible reports whether c must carry a documentation comment.
func docEligible(c scanner.Construct, opts DocOptions) bool {
	if c.Name == "" {
		return false
	}

	if c.Kind == scanner.KindArrow && !opts.IncludeArrows {
		return false
	}

	decl := strings.TrimSpace(c.Declaration)

	for _, cb := range opts.TestCallbacks {
		if c.Name == cb || strings.HasPrefix(decl, cb+"(") || strings.HasPrefix(decl, cb+".") {
			return false
		}
	}

	return true
}

// DocCoverage measures how many eligible constructs carry documentation.
func DocCoverage(files []ScannedFile, opts DocOptions) *m.DocCoverageReport {
	report := &m.DocCoverageReport{
		Top:     opts.Top,
		Missing: []m.DocEntry{},
		Groups:  []m.DocGroup{},
		Files:   []m.DocFileEntry{},
	}

	for _, f := range files {
		var missing m.DocFileEntry

		for _, c := range f.Result.Constructs {
			if !docEligible(c, opts) || f.ignore.constructIgnores(c, m.AnalyzerDocCoverage) {
				continue
			}

			report.Eligible++

			if c.Documented {
				report.Documented++
				continue
			}

			report.Missing = append(report.Missing, m.DocEntry{
				Path:        f.Source.Rel,
				Name:        c.Name,
				Kind:        c.Kind.String(),
				Line:        c.DeclarationLine,
				Declaration: c.Declaration,
			})
			missing.Missing++
			missing.Names = append(missing.Names, c.Name)
		}

		if missing.Missing > 0 {
			missing.Path = f.Source.Rel
			report.Files = append(report.Files, missing)
		}
	}

	report.Coverage = 100
	if report.Eligible > 0 {
		report.Coverage = round1(100 * float64(report.Documented) / float64(report.Eligible))
	}

	report.Groups = groupMissing(report.Missing)

	slices.SortStableFunc(report.Files, func(a, b m.DocFileEntry) int {
		if c := cmp.Compare(b.Missing, a.Missing); c != 0 {
			return c
		}

		return cmp.Compare(a.Path, b.Path)
	})

	return report
}

func groupMissing(missing []m.DocEntry) []m.DocGroup {
	byKind := make(map[string]*m.DocGroup)

	var groups []*m.DocGroup

	for _, e := range missing {
		g, ok := byKind[e.Kind]
		if !ok {
			g = &m.DocGroup{Kind: e.Kind}
			byKind[e.Kind] = g
			groups = append(groups, g)
		}

		g.Count++
		if len(g.Examples) < docGroupExamples {
			g.Examples = append(g.Examples, e)
		}
	}

	slices.SortStableFunc(groups, func(a, b *m.DocGroup) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Kind, b.Kind)
	})

	out := make([]m.DocGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
