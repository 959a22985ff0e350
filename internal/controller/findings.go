package controller

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// finding is one row of a report: a path, the number the report ranks by and
// the remaining columns.
type finding struct {
	path   string
	count  int
	detail string
	cells  []string
}

// reportView is the display form of an envelope shared by both UIs.
type reportView struct {
	title      string
	summary    [][2]string
	header     []string
	countLabel string
	top        int
	findings   []finding
	notes      []string
}

// rows returns the table rows of the first top findings (all when top is zero).
func (v reportView) rows() [][]string {
	items := v.findings
	if v.top > 0 && v.top < len(items) {
		items = items[:v.top]
	}

	out := make([][]string, len(items))
	for i, f := range items {
		out[i] = append([]string{fmt.Sprintf("%d", i+1)}, f.cells...)
	}

	return out
}

func newReportView(env m.Envelope) reportView {
	v := reportView{title: env.Analyzer.Title()}

	v.summary = append(v.summary,
		[2]string{"Generated", env.GeneratedAt.Format("2006-01-02 15:04:05")},
		[2]string{"Files analyzed", fmt.Sprintf("%d", env.FilesAnalyzed)},
	)

	switch {
	case env.FileLength != nil:
		fileLengthView(&v, env.FileLength)
	case env.MethodLength != nil:
		methodLengthView(&v, env.MethodLength)
	case env.DocCoverage != nil:
		docCoverageView(&v, env.DocCoverage)
	case env.Strip != nil:
		stripView(&v, env.Strip)
	}

	for _, s := range env.Skipped {
		v.notes = append(v.notes, fmt.Sprintf("Skipped %s: %s", s.Path, s.Reason))
	}

	return v
}

func fileLengthView(v *reportView, r *m.FileLengthReport) {
	v.top = r.Top
	v.countLabel = "Lines"
	v.header = []string{"#", "Path", "Type", "Lines", "Code", "Comments", "Doc"}
	v.summary = append(v.summary,
		[2]string{"Threshold", fmt.Sprintf("%d lines", r.Threshold)},
		[2]string{"Over threshold", fmt.Sprintf("%d", len(r.Files))},
		[2]string{"Total lines", fmt.Sprintf("%d (code %d, comments %d)", r.Totals.Total, r.Totals.Code, r.Totals.Comment)},
	)

	for _, k := range m.AllKinds() {
		if n := r.KindCounts[k]; n > 0 {
			v.summary = append(v.summary, [2]string{k.Label() + " files", fmt.Sprintf("%d", n)})
		}
	}

	for _, f := range r.Files {
		v.findings = append(v.findings, finding{
			path:   string(f.Path),
			count:  f.Counts.Total,
			detail: f.Kind.Label(),
			cells: []string{
				string(f.Path), f.Kind.Label(),
				fmt.Sprintf("%d", f.Counts.Total), fmt.Sprintf("%d", f.Counts.Code),
				fmt.Sprintf("%d", f.Counts.Comment), fmt.Sprintf("%d", f.Counts.Doc),
			},
		})
	}
}

func methodLengthView(v *reportView, r *m.MethodLengthReport) {
	v.top = r.Top
	v.countLabel = "Body"
	v.header = []string{"#", "Path", "Name", "Kind", "Lines", "Body"}
	v.summary = append(v.summary,
		[2]string{"Threshold", fmt.Sprintf("%d body lines", r.Threshold)},
		[2]string{"Long methods", fmt.Sprintf("%d in %d files", r.TotalMethods, r.FilesWithLong)},
		[2]string{"Average body", fmt.Sprintf("%.1f lines", r.Average)},
	)

	for _, e := range r.Methods {
		v.findings = append(v.findings, finding{
			path:   string(e.Path),
			count:  e.BodyLines,
			detail: fmt.Sprintf("%s (%s) :%d", e.Name, e.Kind, e.StartLine),
			cells: []string{
				string(e.Path), e.Name, e.Kind,
				fmt.Sprintf("%d-%d", e.StartLine, e.EndLine), fmt.Sprintf("%d", e.BodyLines),
			},
		})
	}
}

func docCoverageView(v *reportView, r *m.DocCoverageReport) {
	v.top = r.Top
	v.countLabel = "Missing"
	v.header = []string{"#", "Path", "Missing", "Names"}
	v.summary = append(v.summary,
		[2]string{"Coverage", fmt.Sprintf("%.1f%% (%d of %d documented)", r.Coverage, r.Documented, r.Eligible)},
	)

	for _, g := range r.Groups {
		names := make([]string, len(g.Examples))
		for i, e := range g.Examples {
			names[i] = e.Name
		}

		v.summary = append(v.summary, [2]string{g.Kind, fmt.Sprintf("%d missing (%s)", g.Count, strings.Join(names, ", "))})
	}

	for _, f := range r.Files {
		names := strings.Join(f.Names, ", ")
		v.findings = append(v.findings, finding{
			path:   string(f.Path),
			count:  f.Missing,
			detail: names,
			cells:  []string{string(f.Path), fmt.Sprintf("%d", f.Missing), names},
		})
	}
}

func stripView(v *reportView, r *m.StripReport) {
	v.top = r.Top
	v.countLabel = "Found"

	mode, removed := "dry run", "Removable"
	if r.Applied {
		mode, removed = "applied", "Removed"
	}

	v.header = []string{"#", "Path", "Found", removed, "Remaining"}
	v.summary = append(v.summary,
		[2]string{"Targets", strings.Join(r.Targets, ", ")},
		[2]string{"Mode", mode},
		[2]string{"Found", fmt.Sprintf("%d", r.Original)},
		[2]string{removed, fmt.Sprintf("%d", r.Removed)},
		[2]string{"Remaining", fmt.Sprintf("%d", r.Remaining)},
	)

	if r.Applied {
		v.summary = append(v.summary,
			[2]string{"Files modified", fmt.Sprintf("%d", r.FilesModified)},
			[2]string{"Backup", string(r.BackupDir)},
		)
	}

	for _, f := range r.Files {
		v.findings = append(v.findings, finding{
			path:   string(f.Path),
			count:  f.Original,
			detail: fmt.Sprintf("%s %d, remaining %d", strings.ToLower(removed), f.Removed, f.Remaining),
			cells: []string{
				string(f.Path), fmt.Sprintf("%d", f.Original),
				fmt.Sprintf("%d", f.Removed), fmt.Sprintf("%d", f.Remaining),
			},
		})

		if f.Remaining > 0 {
			v.notes = append(v.notes, fmt.Sprintf("Review manually: %s (%d left)", f.Path, f.Remaining))
		}
	}

	for _, f := range r.Failed {
		v.notes = append(v.notes, fmt.Sprintf("Failed: %s (%s)", f.Path, f.Reason))
	}
}
