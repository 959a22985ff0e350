// Package domain runs the codeaudit analyzers over the selected source files.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mouse-blink/codeaudit/internal/adapter"
	"github.com/mouse-blink/codeaudit/internal/controller"
	"github.com/mouse-blink/codeaudit/internal/logging"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

// Workflow defines the codeaudit operations.
type Workflow interface {
	Analyze(ctx context.Context, args AnalyzeArgs) error
	Strip(ctx context.Context, args StripArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

// SourceArgs selects the files to work on.
type SourceArgs struct {
	Paths   []m.Path
	Exclude []string
	Kinds   []m.FileKind
	Threads int
}

// AnalyzeArgs configures an analysis run.
type AnalyzeArgs struct {
	SourceArgs
	Analyzers []m.AnalyzerKind
	Settings  Settings
	// Reports is the directory receiving text and YAML reports; empty skips saving.
	Reports m.Path
}

// StripArgs configures a debug statement run.
type StripArgs struct {
	SourceArgs
	Settings Settings
	Reports  m.Path
	// Apply rewrites the files; otherwise the run only reports.
	Apply bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// ListArgs configures the list operation.
type ListArgs struct {
	SourceArgs
}

// ViewArgs configures the view operation.
type ViewArgs struct {
	Reports m.Path
	// Analyzer limits the output to one analyzer when set.
	Analyzer m.AnalyzerKind
	// Latest shows only the newest report of each analyzer.
	Latest bool
}

// WatchArgs configures the watch operation.
type WatchArgs struct {
	AnalyzeArgs
}

type workflow struct {
	fs      adapter.SourceFSAdapter
	store   adapter.ReportStore
	cache   *adapter.ScanCache
	watcher adapter.ChangeWatcher
	ui      controller.UI
	log     zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// Option customises a Workflow.
type Option func(*workflow)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(w *workflow) {
		w.log = log
	}
}

// WithWatcher sets the change watcher used by Watch.
func WithWatcher(watcher adapter.ChangeWatcher) Option {
	return func(w *workflow) {
		w.watcher = watcher
	}
}

// WithClock replaces time.Now, for reproducible reports.
func WithClock(now func() time.Time) Option {
	return func(w *workflow) {
		w.now = now
	}
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	store adapter.ReportStore,
	cache *adapter.ScanCache,
	ui controller.UI,
	opts ...Option,
) Workflow {
	w := &workflow{
		fs:    fs,
		store: store,
		cache: cache,
		ui:    ui,
		log:   logging.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *workflow) sources(args SourceArgs) ([]m.SourceFile, error) {
	paths := args.Paths
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	sources, err := w.fs.Get(paths, adapter.SourceFilter{Exclude: args.Exclude, Kinds: args.Kinds})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}

	if len(sources) == 0 {
		return nil, m.ErrNoSources
	}

	w.log.Debug().Int("files", len(sources)).Msg("collected sources")

	return sources, nil
}

// List shows the files an analysis would read.
func (w *workflow) List(_ context.Context, args ListArgs) error {
	sources, err := w.sources(args.SourceArgs)
	if err != nil {
		return err
	}

	return w.ui.DisplaySources(sources)
}

// Analyze scans every file once and runs the requested analyzers over the results.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) error {
	analyzers := args.Analyzers
	if len(analyzers) == 0 {
		analyzers = m.DefaultAnalyzers()
	}

	sources, err := w.sources(args.SourceArgs)
	if err != nil {
		return err
	}

	files, skipped, err := w.scanSources(ctx, sources, args.Threads, args.Settings)
	if err != nil {
		return err
	}

	for _, analyzer := range analyzers {
		env := w.envelope(analyzer, args.SourceArgs, len(files), skipped)

		switch analyzer {
		case m.AnalyzerFileLength:
			env.FileLength = FileLength(files, args.Settings.FileThreshold, args.Settings.FileTop)
		case m.AnalyzerMethodLength:
			env.MethodLength = MethodLength(files, args.Settings.MethodThreshold, args.Settings.MethodTop)
		case m.AnalyzerDocCoverage:
			env.DocCoverage = DocCoverage(files, DocOptions{
				Top:           args.Settings.DocTop,
				IncludeArrows: args.Settings.IncludeArrows,
				TestCallbacks: args.Settings.TestCallbacks,
			})
		case m.AnalyzerStrip:
			env.Strip = w.locateCalls(files, args.Settings)
		default:
			return &m.UnknownAnalyzerError{Name: string(analyzer)}
		}

		if err := w.publish(env, args.Reports); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) envelope(analyzer m.AnalyzerKind, args SourceArgs, analyzed int, skipped []m.SkippedFile) m.Envelope {
	roots := args.Paths
	if len(roots) == 0 {
		roots = []m.Path{"./..."}
	}

	return m.Envelope{
		ID:            w.newID(),
		Analyzer:      analyzer,
		GeneratedAt:   w.now(),
		Roots:         roots,
		Excluded:      args.Exclude,
		FilesAnalyzed: analyzed,
		Skipped:       skipped,
	}
}

// publish displays env and saves it when a reports directory is set.
func (w *workflow) publish(env m.Envelope, reports m.Path) error {
	if err := w.ui.DisplayReport(env); err != nil {
		return err
	}

	if reports == "" {
		return nil
	}

	paths, err := w.store.Save(reports, env)
	if err != nil {
		return fmt.Errorf("failed to save %s report: %w", env.Analyzer, err)
	}

	for _, p := range paths {
		w.log.Info().Str("analyzer", string(env.Analyzer)).Str("path", string(p)).Msg("report saved")
	}

	return nil
}

// View re-displays saved reports.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	envelopes, err := w.store.Load(args.Reports)
	if err != nil {
		return err
	}

	var selected []m.Envelope

	for _, env := range envelopes {
		if args.Analyzer == "" || env.Analyzer == args.Analyzer {
			selected = append(selected, env)
		}
	}

	if args.Latest {
		selected = latestPerAnalyzer(selected)
	}

	if len(selected) == 0 {
		w.ui.DisplayMessage("No reports found in %s", args.Reports)
		return nil
	}

	for _, env := range selected {
		if err := w.ui.DisplayReport(env); err != nil {
			return err
		}
	}

	return nil
}

// latestPerAnalyzer keeps the last envelope of each analyzer; envelopes are
// ordered oldest first.
func latestPerAnalyzer(envelopes []m.Envelope) []m.Envelope {
	last := make(map[m.AnalyzerKind]int)
	for i, env := range envelopes {
		last[env.Analyzer] = i
	}

	out := make([]m.Envelope, 0, len(last))

	for i, env := range envelopes {
		if last[env.Analyzer] == i {
			out = append(out, env)
		}
	}

	return out
}

// Watch runs the analysis once and again after every burst of changes until
// ctx is cancelled.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if w.watcher == nil {
		return errors.New("watch is not available")
	}

	if err := w.Analyze(ctx, args.AnalyzeArgs); err != nil {
		return err
	}

	w.ui.DisplayMessage("Watching for changes, press Ctrl+C to stop")

	paths := args.Paths
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	filter := adapter.SourceFilter{Exclude: args.Exclude, Kinds: args.Kinds}

	return w.watcher.Watch(ctx, paths, filter, func(changed []m.Path) {
		w.log.Debug().Strs("files", pathStrings(changed)).Msg("re-running analysis")

		if err := w.Analyze(ctx, args.AnalyzeArgs); err != nil && !errors.Is(err, context.Canceled) {
			w.log.Error().Err(err).Msg("analysis failed")
		}
	})
}

func pathStrings(paths []m.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}

	return out
}
