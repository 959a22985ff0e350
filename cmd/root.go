// Package cmd provides the root command and CLI setup for codeaudit.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeaudit/internal/adapter"
	"github.com/mouse-blink/codeaudit/internal/config"
	"github.com/mouse-blink/codeaudit/internal/controller"
	"github.com/mouse-blink/codeaudit/internal/domain"
	"github.com/mouse-blink/codeaudit/internal/logging"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var scanCache *adapter.ScanCache
var watcher *adapter.FSWatcher
var logger zerolog.Logger
var workflow domain.Workflow
var ui controller.UI

func init() {
	logger = newLogger(os.Getenv(config.EnvPrefix + "_LOG_FORMAT"))
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	watcher = adapter.NewFSWatcher(sourceFSAdapter, 0, logger)

	var err error

	scanCache, err = adapter.NewScanCache(0)
	if err != nil {
		logger.Warn().Err(err).Msg("scan cache disabled")
	}

	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		reportStore,
		scanCache,
		ui,
		domain.WithLogger(logger),
		domain.WithWatcher(watcher),
	)
}

var configFlag string
var excludeFlags []string
var parallelFlag int
var reportsOutputDirFlag string
var thresholdFlag int
var topFlag int
var verboseFlag int
var quietFlag bool

// cfg is loaded before every command runs.
var cfg = config.DefaultConfig()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codeaudit [paths...]",
		Short: "Code quality audits for TypeScript, JavaScript, HTML and CSS",
		Long: `Codeaudit scans web front-end sources and reports long files, long
functions and methods, missing documentation comments and leftover debug
statements. Without a subcommand it runs every read-only analyzer.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./lib    scan the top level of multiple directories`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzers(cmd, args, m.DefaultAnalyzers())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default .codeaudit.yaml in the working directory or $HOME/.config/codeaudit)")
	flags.StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude directory names or glob patterns (can be repeated)")
	flags.IntVarP(&parallelFlag, "parallel", "p", 0, "number of files scanned in parallel (default from config)")
	flags.StringVar(&reportsOutputDirFlag, "reports", "", "directory receiving the text and YAML reports (default from config)")
	flags.IntVar(&thresholdFlag, "threshold", 0, "line threshold for the length and methods commands")
	flags.IntVar(&topFlag, "top", 0, "number of findings listed per report")
	flags.CountVarP(&verboseFlag, "verbose", "v", "increase log output (-v info, -vv debug)")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "disable log output")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = loaded

	level := logging.LevelFromVerbosity(verboseFlag, quietFlag)
	if verboseFlag == 0 && !quietFlag {
		level = logging.LevelFromString(cfg.LogLevel)
	}

	zerolog.SetGlobalLevel(level)

	if watcher != nil {
		watcher.SetDebounce(time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond)
	}

	return nil
}

// newLogger writes to stderr so reports on stdout stay clean. The level is
// filtered globally once the config is loaded.
func newLogger(format string) zerolog.Logger {
	if strings.EqualFold(format, "json") {
		return logging.NewJSON(os.Stderr, zerolog.TraceLevel)
	}

	return logging.New(os.Stderr, zerolog.TraceLevel)
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func sourceArgs(cmd *cobra.Command, args []string) (domain.SourceArgs, error) {
	kinds, err := m.ParseKinds(cfg.Kinds)
	if err != nil {
		return domain.SourceArgs{}, err
	}

	exclude := append([]string(nil), cfg.Exclude...)
	exclude = append(exclude, excludeFlags...)

	// never analyze our own output
	for _, dir := range []string{cfg.ReportsDir, string(reportsDir(cmd)), cfg.Strip.BackupDir} {
		if dir == "" || filepath.IsAbs(dir) {
			continue
		}

		if d := filepath.ToSlash(filepath.Clean(dir)); !slices.Contains(exclude, d) {
			exclude = append(exclude, d)
		}
	}

	threads := cfg.Parallel
	if cmd.Flags().Changed("parallel") {
		threads = parallelFlag
	}

	if threads <= 0 {
		return domain.SourceArgs{}, fmt.Errorf("--parallel must be positive, got %d", threads)
	}

	return domain.SourceArgs{
		Paths:   parsePaths(args),
		Exclude: exclude,
		Kinds:   kinds,
		Threads: threads,
	}, nil
}

func reportsDir(cmd *cobra.Command) m.Path {
	if cmd.Flags().Changed("reports") {
		return m.Path(reportsOutputDirFlag)
	}

	return m.Path(cfg.ReportsDir)
}

// settings maps the configuration onto the analyzer settings. --threshold
// needs exactly one length analyzer to apply to.
func settings(cmd *cobra.Command, analyzers []m.AnalyzerKind) (domain.Settings, error) {
	s := domain.Settings{
		FileThreshold:   cfg.FileLength.Threshold,
		FileTop:         cfg.FileLength.Top,
		MethodThreshold: cfg.MethodLength.Threshold,
		MethodTop:       cfg.MethodLength.Top,
		DocTop:          cfg.Docs.Top,
		IncludeArrows:   cfg.Docs.IncludeArrows,
		LineCommentDocs: cfg.Docs.LineComments,
		TestCallbacks:   cfg.Docs.TestCallbacks,
		LifecycleHooks:  cfg.Docs.LifecycleHooks,
		StripTargets:    cfg.Strip.Targets,
		StripTop:        cfg.Strip.Top,
		BackupDir:       m.Path(cfg.Strip.BackupDir),
	}

	if cmd.Flags().Changed("top") {
		if topFlag < 0 {
			return s, fmt.Errorf("--top must not be negative, got %d", topFlag)
		}

		s.FileTop, s.MethodTop, s.DocTop, s.StripTop = topFlag, topFlag, topFlag, topFlag
	}

	if cmd.Flags().Changed("threshold") {
		if thresholdFlag <= 0 {
			return s, fmt.Errorf("--threshold must be positive, got %d", thresholdFlag)
		}

		if len(analyzers) != 1 {
			return s, fmt.Errorf("--threshold applies to a single analyzer, got %s", analyzerNames(analyzers))
		}

		switch analyzers[0] {
		case m.AnalyzerFileLength:
			s.FileThreshold = thresholdFlag
		case m.AnalyzerMethodLength:
			s.MethodThreshold = thresholdFlag
		default:
			return s, fmt.Errorf("--threshold does not apply to %s", analyzers[0])
		}
	}

	return s, nil
}

func analyzeArgs(cmd *cobra.Command, args []string, analyzers []m.AnalyzerKind) (domain.AnalyzeArgs, error) {
	src, err := sourceArgs(cmd, args)
	if err != nil {
		return domain.AnalyzeArgs{}, err
	}

	s, err := settings(cmd, analyzers)
	if err != nil {
		return domain.AnalyzeArgs{}, err
	}

	return domain.AnalyzeArgs{
		SourceArgs: src,
		Analyzers:  analyzers,
		Settings:   s,
		Reports:    reportsDir(cmd),
	}, nil
}

func runAnalyzers(cmd *cobra.Command, args []string, analyzers []m.AnalyzerKind) error {
	analyze, err := analyzeArgs(cmd, args, analyzers)
	if err != nil {
		return err
	}

	return workflow.Analyze(cmd.Context(), analyze)
}

// parseAnalyzers converts analyzer names; no names means the defaults.
func parseAnalyzers(names []string) ([]m.AnalyzerKind, error) {
	if len(names) == 0 {
		return m.DefaultAnalyzers(), nil
	}

	analyzers := make([]m.AnalyzerKind, 0, len(names))

	for _, name := range names {
		a, err := m.ParseAnalyzer(name)
		if err != nil {
			return nil, err
		}

		analyzers = append(analyzers, a)
	}

	return analyzers, nil
}

func analyzerNames(analyzers []m.AnalyzerKind) string {
	names := make([]string, 0, len(analyzers))
	for _, a := range analyzers {
		names = append(names, string(a))
	}

	return strings.Join(names, ", ")
}
