package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	controllermocks "github.com/mouse-blink/codeaudit/internal/controller/mocks"
	"github.com/mouse-blink/codeaudit/internal/domain"
	domainmocks "github.com/mouse-blink/codeaudit/internal/domain/mocks"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

// newTestRoot returns a fresh root command with the given subcommands and
// swaps the package workflow for a mock.
func newTestRoot(t *testing.T, subs ...*cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	cmd := newRootCmd()
	cmd.AddCommand(subs...)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd, mockWorkflow
}

// useMockUI swaps the package UI for a mock.
func useMockUI(t *testing.T) *controllermocks.MockUI {
	t.Helper()

	mockUI := controllermocks.NewMockUI(t)

	originalUI := ui
	ui = mockUI

	t.Cleanup(func() { ui = originalUI })

	return mockUI
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "codeaudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd_RunsDefaultAnalyzers(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	mockWorkflow.On("Analyze", mock.Anything, mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return assert.ObjectsAreEqual(m.DefaultAnalyzers(), args.Analyzers) &&
			len(args.Paths) == 0 &&
			args.Threads == 4 &&
			args.Reports == m.Path(".codeaudit-reports") &&
			args.Settings.FileThreshold == 400 &&
			args.Settings.MethodThreshold == 14 &&
			args.Settings.FileTop == 10
	})).Return(nil)

	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_ExcludesOutputDirectories(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	var got domain.AnalyzeArgs

	mockWorkflow.On("Analyze", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.AnalyzeArgs) }).
		Return(nil)

	cmd.SetArgs([]string{"-x", "**/*.spec.ts", "--reports", "out/reports", "./src/..."})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []m.Path{"./src/..."}, got.Paths)
	assert.Equal(t, m.Path("out/reports"), got.Reports)
	assert.Contains(t, got.Exclude, "node_modules")
	assert.Contains(t, got.Exclude, "**/*.spec.ts")
	assert.Contains(t, got.Exclude, ".codeaudit-reports")
	assert.Contains(t, got.Exclude, "out/reports")
	assert.Contains(t, got.Exclude, ".codeaudit-backups")
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
parallel: 2
kinds: [ts, html]
file_length:
  threshold: 250
docs:
  include_arrows: true
  lifecycle_hooks: [ngOnInit]
`)

	cmd, mockWorkflow := newTestRoot(t)

	mockWorkflow.On("Analyze", mock.Anything, mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return args.Threads == 8 &&
			assert.ObjectsAreEqual([]m.FileKind{m.KindTypeScript, m.KindHTML}, args.Kinds) &&
			args.Settings.FileThreshold == 250 &&
			args.Settings.IncludeArrows &&
			assert.ObjectsAreEqual([]string{"ngOnInit"}, args.Settings.LifecycleHooks) &&
			args.Settings.FileTop == 3 &&
			args.Settings.MethodTop == 3 &&
			args.Settings.DocTop == 3
	})).Return(nil)

	cmd.SetArgs([]string{"--config", path, "--parallel", "8", "--top", "3"})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "method_length:\n  threshold: 0\n")

	cmd, _ := newTestRoot(t)

	cmd.SetArgs([]string{"--config", path})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method_length.threshold must be positive")
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	cmd, _ := newTestRoot(t)

	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, cmd.Execute())
}

func TestRootCmd_RejectsThresholdForSeveralAnalyzers(t *testing.T) {
	cmd, _ := newTestRoot(t)

	cmd.SetArgs([]string{"--threshold", "100"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--threshold applies to a single analyzer")
}

func TestRootCmd_RejectsNonPositiveParallel(t *testing.T) {
	cmd, _ := newTestRoot(t)

	cmd.SetArgs([]string{"--parallel", "0"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--parallel must be positive")
}

func TestRootCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	mockWorkflow.On("Analyze", mock.Anything, mock.Anything).Return(m.ErrNoSources)

	cmd.SetArgs([]string{"./empty"})
	assert.ErrorIs(t, cmd.Execute(), m.ErrNoSources)
}

func TestParsePaths(t *testing.T) {
	assert.Empty(t, parsePaths(nil))
	assert.Equal(t, []m.Path{"./src/...", "lib"}, parsePaths([]string{"./src/...", "lib"}))
}

func TestParseAnalyzers(t *testing.T) {
	got, err := parseAnalyzers(nil)
	require.NoError(t, err)
	assert.Equal(t, m.DefaultAnalyzers(), got)

	got, err = parseAnalyzers([]string{"docs", "strip"})
	require.NoError(t, err)
	assert.Equal(t, []m.AnalyzerKind{m.AnalyzerDocCoverage, m.AnalyzerStrip}, got)

	_, err = parseAnalyzers([]string{"complexity"})

	var unknown *m.UnknownAnalyzerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "complexity", unknown.Name)
}
