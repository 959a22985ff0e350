package adapter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

const ruleWidth = 80

// WriteText renders env as the plain text report stored next to the YAML copy.
func WriteText(w io.Writer, env m.Envelope) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s ANALYSIS REPORT\n", strings.ToUpper(env.Analyzer.Title()))
	fmt.Fprintf(&b, "Generated: %s\n", env.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Report ID: %s\n", env.ID)
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Roots: %s\n", joinPaths(env.Roots))

	if len(env.Excluded) > 0 {
		fmt.Fprintf(&b, "Excluded: %s\n", strings.Join(env.Excluded, ", "))
	}

	fmt.Fprintf(&b, "Files analyzed: %d\n", env.FilesAnalyzed)

	for _, s := range env.Skipped {
		fmt.Fprintf(&b, "Skipped: %s (%s)\n", s.Path, s.Reason)
	}

	b.WriteString("\n")

	switch {
	case env.FileLength != nil:
		writeFileLength(&b, env.FileLength)
	case env.MethodLength != nil:
		writeMethodLength(&b, env.MethodLength)
	case env.DocCoverage != nil:
		writeDocCoverage(&b, env.DocCoverage)
	case env.Strip != nil:
		writeStrip(&b, env.Strip)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func section(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "%s\n=== %s ===\n%s\n", rule, title, rule)
}

func writeFileLength(b *strings.Builder, r *m.FileLengthReport) {
	for _, k := range m.AllKinds() {
		if n := r.KindCounts[k]; n > 0 {
			fmt.Fprintf(b, "%s files: %d\n", k.Label(), n)
		}
	}

	b.WriteString("\n")

	for _, f := range r.Files {
		fmt.Fprintf(b, "File: %s\n%s\n", f.Path, strings.Repeat("-", ruleWidth))
		fmt.Fprintf(b, "  Type: %s | Total lines: %d\n", f.Kind.Label(), f.Counts.Total)
		fmt.Fprintf(b, "  Non-empty: %d | Comments: %d | Doc: %d | Code: %d\n\n",
			f.Counts.NonEmpty, f.Counts.Comment, f.Counts.Doc, f.Counts.Code)
	}

	section(b, fmt.Sprintf("TOP %d LARGEST FILES", r.Top))

	for i, f := range topN(r.Files, r.Top) {
		fmt.Fprintf(b, "%2d. %s (%d lines)\n    Type: %s\n    File: %s\n\n",
			i+1, filepath.Base(string(f.Path)), f.Counts.Total, f.Kind.Label(), f.Path)
	}

	b.WriteString("=== SUMMARY BY FILE TYPE ===\n")

	for _, k := range m.AllKinds() {
		count, total, largest := 0, 0, 0

		for _, f := range r.Files {
			if f.Kind != k {
				continue
			}

			count++
			total += f.Counts.Total
			largest = max(largest, f.Counts.Total)
		}

		if count == 0 {
			fmt.Fprintf(b, "%s: 0 files > %d lines\n", k.Label(), r.Threshold)
			continue
		}

		fmt.Fprintf(b, "%s: %d files > %d lines (avg: %.1f, max: %d)\n",
			k.Label(), count, r.Threshold, float64(total)/float64(count), largest)
	}

	b.WriteString("\n=== OVERALL SUMMARY ===\n")
	fmt.Fprintf(b, "Files analyzed: %d\n", r.TotalFiles)
	fmt.Fprintf(b, "Files over %d lines: %d\n", r.Threshold, len(r.Files))

	if len(r.Files) == 0 {
		fmt.Fprintf(b, "No files longer than %d lines found!\n", r.Threshold)
		return
	}

	sum := 0
	for _, f := range r.Files {
		sum += f.Counts.Total
	}

	fmt.Fprintf(b, "Average length of large files: %.1f lines\n", float64(sum)/float64(len(r.Files)))
	fmt.Fprintf(b, "Largest file: %s (%d lines)\n", filepath.Base(string(r.Files[0].Path)), r.Files[0].Counts.Total)

	b.WriteString("\n=== RECOMMENDATIONS ===\n")
	b.WriteString("- Split files well above the threshold into smaller modules\n")
	b.WriteString("- Break large HTML templates into components\n")
	b.WriteString("- Move large stylesheets to a modular structure\n")
}

func writeMethodLength(b *strings.Builder, r *m.MethodLengthReport) {
	for _, e := range r.Methods {
		fmt.Fprintf(b, "File: %s\n", e.Path)
		fmt.Fprintf(b, "  %s %s (lines %d-%d): %d lines\n", e.Kind, e.Name, e.StartLine, e.EndLine, e.BodyLines)
	}

	b.WriteString("\n")
	section(b, fmt.Sprintf("TOP %d LONGEST METHODS", r.Top))

	for i, e := range topN(r.Methods, r.Top) {
		fmt.Fprintf(b, "%2d. %s (%d lines)\n    Kind: %s\n    File: %s:%d\n",
			i+1, e.Name, e.BodyLines, e.Kind, e.Path, e.StartLine)

		if e.Declaration != "" {
			fmt.Fprintf(b, "    %s\n", e.Declaration)
		}

		b.WriteString("\n")
	}

	b.WriteString("=== SUMMARY ===\n")
	fmt.Fprintf(b, "Methods over %d lines: %d\n", r.Threshold, r.TotalMethods)
	fmt.Fprintf(b, "Files with long methods: %d\n", r.FilesWithLong)

	if r.TotalMethods == 0 {
		fmt.Fprintf(b, "No methods longer than %d lines found!\n", r.Threshold)
		return
	}

	fmt.Fprintf(b, "Average length of long methods: %.1f lines\n", r.Average)
	fmt.Fprintf(b, "Longest method: %s (%d lines)\n", r.Methods[0].Name, r.Methods[0].BodyLines)
}

func writeDocCoverage(b *strings.Builder, r *m.DocCoverageReport) {
	fmt.Fprintf(b, "Eligible functions and methods: %d\n", r.Eligible)
	fmt.Fprintf(b, "Documented: %d\n", r.Documented)
	fmt.Fprintf(b, "Missing documentation: %d\n", len(r.Missing))
	fmt.Fprintf(b, "Coverage: %.1f%%\n\n", r.Coverage)

	section(b, "MISSING DOCUMENTATION BY KIND")

	for _, g := range r.Groups {
		fmt.Fprintf(b, "%s: %d\n", g.Kind, g.Count)

		for _, e := range g.Examples {
			fmt.Fprintf(b, "    %s (%s:%d)\n", e.Name, e.Path, e.Line)
		}
	}

	b.WriteString("\n")
	section(b, fmt.Sprintf("TOP %d FILES WITH MISSING DOCUMENTATION", r.Top))

	for i, f := range topN(r.Files, r.Top) {
		fmt.Fprintf(b, "%2d. %s (%d missing)\n", i+1, f.Path, f.Missing)

		if len(f.Names) > 0 {
			fmt.Fprintf(b, "    %s\n", strings.Join(f.Names, ", "))
		}
	}

	if len(r.Missing) == 0 {
		b.WriteString("\nEvery eligible function and method is documented!\n")
	}
}

func writeStrip(b *strings.Builder, r *m.StripReport) {
	fmt.Fprintf(b, "Targets: %s\n", strings.Join(r.Targets, ", "))

	mode := "dry run"
	if r.Applied {
		mode = "applied"
	}

	fmt.Fprintf(b, "Mode: %s\n", mode)

	if r.BackupDir != "" {
		fmt.Fprintf(b, "Backup: %s\n", r.BackupDir)
	}

	b.WriteString("\n")
	section(b, fmt.Sprintf("TOP %d FILES", r.Top))

	for i, f := range topN(r.Files, r.Top) {
		fmt.Fprintf(b, "%2d. %s (original: %d, removable: %d, remaining: %d)\n",
			i+1, f.Path, f.Original, f.Removed, f.Remaining)
	}

	b.WriteString("\n=== SUMMARY ===\n")
	fmt.Fprintf(b, "Occurrences found: %d\n", r.Original)
	fmt.Fprintf(b, "Removable statements: %d\n", r.Removed)
	fmt.Fprintf(b, "Remaining (manual review): %d\n", r.Remaining)
	fmt.Fprintf(b, "Files modified: %d\n", r.FilesModified)

	var review []string

	for _, f := range r.Files {
		if f.Remaining > 0 {
			review = append(review, string(f.Path))
		}
	}

	if len(review) > 0 {
		b.WriteString("\nReview manually:\n")

		for _, p := range review {
			fmt.Fprintf(b, "  %s\n", p)
		}
	}

	for _, f := range r.Failed {
		fmt.Fprintf(b, "Failed: %s (%s)\n", f.Path, f.Reason)
	}
}

func topN[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}

	return items[:n]
}

func joinPaths(paths []m.Path) string {
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = string(p)
	}

	return strings.Join(parts, ", ")
}
