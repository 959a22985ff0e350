package domain

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mouse-blink/codeaudit/internal/adapter"
	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

var errFileChanged = errors.New("file changed since it was scanned")

// stripFile is one file with target calls.
type stripFile struct {
	file  ScannedFile
	calls []scanner.Call
	entry m.StripEntry
}

// findCalls locates the target calls of f that are not suppressed by an
// ignore directive.
func findCalls(f ScannedFile, targets []string) []scanner.Call {
	if !f.Source.Kind.IsScript() || f.ignore.fileIgnores(m.AnalyzerStrip) {
		return nil
	}

	found := scanner.FindCalls(f.text, f.Source.Kind, targets)

	calls := make([]scanner.Call, 0, len(found.Calls))

	for _, c := range found.Calls {
		if f.ignore.lineIgnores(c.Line, m.AnalyzerStrip) {
			continue
		}

		calls = append(calls, c)
	}

	return calls
}

func collectStrip(files []ScannedFile, targets []string) []stripFile {
	var out []stripFile

	for _, f := range files {
		calls := findCalls(f, targets)
		if len(calls) == 0 {
			continue
		}

		entry := m.StripEntry{Path: f.Source.Rel, Original: len(calls), Lines: make([]int, 0, len(calls))}

		for _, c := range calls {
			entry.Lines = append(entry.Lines, c.Line)

			if c.Statement {
				entry.Removed++
			} else {
				entry.Remaining++
			}
		}

		out = append(out, stripFile{file: f, calls: calls, entry: entry})
	}

	return out
}

func newStripReport(settings Settings) *m.StripReport {
	targets := settings.StripTargets
	if len(targets) == 0 {
		targets = scanner.DefaultCallTargets
	}

	return &m.StripReport{
		Top:     settings.StripTop,
		Targets: append([]string(nil), targets...),
		Files:   []m.StripEntry{},
	}
}

// summarize fills the totals of report from its entries and orders them by
// original count, largest first.
func summarize(report *m.StripReport) {
	report.Original, report.Removed, report.Remaining, report.FilesModified = 0, 0, 0, 0

	for _, e := range report.Files {
		report.Original += e.Original
		report.Removed += e.Removed
		report.Remaining += e.Remaining

		if e.Modified {
			report.FilesModified++
		}
	}

	slices.SortStableFunc(report.Files, func(a, b m.StripEntry) int {
		if c := cmp.Compare(b.Original, a.Original); c != 0 {
			return c
		}

		return cmp.Compare(a.Path, b.Path)
	})
}

// locateCalls builds the dry-run report of the strip analyzer.
func (w *workflow) locateCalls(files []ScannedFile, settings Settings) *m.StripReport {
	report := newStripReport(settings)

	for _, sf := range collectStrip(files, report.Targets) {
		report.Files = append(report.Files, sf.entry)
	}

	summarize(report)

	return report
}

// Strip locates the target calls and, when args.Apply is set, removes the
// removable ones after backing up every file it is about to rewrite.
func (w *workflow) Strip(ctx context.Context, args StripArgs) error {
	sources, err := w.sources(args.SourceArgs)
	if err != nil {
		return err
	}

	files, skipped, err := w.scanSources(ctx, sources, args.Threads, args.Settings)
	if err != nil {
		return err
	}

	env := w.envelope(m.AnalyzerStrip, args.SourceArgs, len(files), skipped)
	report := newStripReport(args.Settings)
	env.Strip = report

	found := collectStrip(files, report.Targets)

	var pending []stripFile

	for _, sf := range found {
		if sf.entry.Removed > 0 {
			pending = append(pending, sf)
		}
	}

	if args.Apply && len(pending) > 0 {
		if err := w.apply(ctx, args, report, pending); err != nil {
			return err
		}
	}

	rewritten := make(map[m.Path]struct{}, len(report.Files))
	for _, e := range report.Files {
		rewritten[e.Path] = struct{}{}
	}

	for _, sf := range found {
		if _, ok := rewritten[sf.entry.Path]; !ok {
			report.Files = append(report.Files, sf.entry)
		}
	}

	summarize(report)

	return w.publish(env, args.Reports)
}

// apply backs up and rewrites pending files, recording the outcome in report.
func (w *workflow) apply(ctx context.Context, args StripArgs, report *m.StripReport, pending []stripFile) error {
	removable := 0
	for _, sf := range pending {
		removable += sf.entry.Removed
	}

	if !args.Yes {
		ok, err := w.ui.Confirm(fmt.Sprintf("Remove %d statements from %d files?", removable, len(pending)))
		if err != nil {
			return err
		}

		if !ok {
			return m.ErrCancelled
		}
	}

	backupRoot := args.Settings.BackupDir
	if backupRoot == "" {
		backupRoot = DefaultSettings().BackupDir
	}

	sources := make([]m.SourceFile, len(pending))
	for i, sf := range pending {
		sources[i] = sf.file.Source
	}

	backup, err := w.fs.Backup(backupRoot, sources)
	if err != nil {
		return fmt.Errorf("failed to back up files: %w", err)
	}

	w.log.Info().Str("dir", string(backup)).Int("files", len(sources)).Msg("backup created")

	report.Applied = true
	report.BackupDir = backup

	for _, sf := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := w.rewrite(sf, report.Targets)
		if err != nil {
			w.log.Warn().Err(err).Str("file", string(sf.file.Source.Rel)).Msg("strip failed")
			report.Failed = append(report.Failed, m.SkippedFile{Path: sf.file.Source.Rel, Reason: err.Error()})
			entry = sf.entry
			entry.Remaining += entry.Removed
			entry.Removed = 0
		}

		report.Files = append(report.Files, entry)
	}

	return nil
}

// rewrite removes the statement calls of one file. The file is left untouched
// when it changed since it was scanned.
func (w *workflow) rewrite(sf stripFile, targets []string) (m.StripEntry, error) {
	src := sf.file.Source

	current, err := w.fs.ReadFile(src.Path)
	if err != nil {
		return m.StripEntry{}, fmt.Errorf("%w: %w", m.ErrUnreadableFile, err)
	}

	if adapter.HashBytes(current) != src.Hash {
		return m.StripEntry{}, errFileChanged
	}

	info, err := w.fs.FileInfo(src.Path)
	if err != nil {
		return m.StripEntry{}, fmt.Errorf("failed to stat file: %w", err)
	}

	updated := scanner.RemoveCalls(sf.file.text, sf.calls)

	if err := w.fs.WriteFile(src.Path, []byte(updated), info.Mode().Perm()); err != nil {
		return m.StripEntry{}, fmt.Errorf("failed to write file: %w", err)
	}

	after := NewScannedFile(src, scanner.Scan(updated, src.Kind))
	after.text = updated
	left := len(findCalls(after, targets))

	entry := sf.entry
	entry.Modified = true
	entry.Remaining = left
	entry.Removed = entry.Original - left

	return entry, nil
}
