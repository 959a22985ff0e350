package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/codeaudit/internal/domain"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

func TestWatchCmd_DefaultAnalyzers(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.MatchedBy(func(args domain.WatchArgs) bool {
		return len(args.Analyzers) == 3 && len(args.Paths) == 1 && args.Paths[0] == m.Path("./app/...")
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "./app/..."})
	require.NoError(t, cmd.Execute())
}

func TestWatchCmd_SelectedAnalyzersWithThreshold(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.MatchedBy(func(args domain.WatchArgs) bool {
		return len(args.Analyzers) == 1 &&
			args.Analyzers[0] == m.AnalyzerMethodLength &&
			args.Settings.MethodThreshold == 20
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "-a", "methods", "--threshold", "20"})
	require.NoError(t, cmd.Execute())
}

func TestWatchCmd_InterruptIsNotAnError(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.Anything).Return(context.Canceled)

	cmd.SetArgs([]string{"watch"})
	require.NoError(t, cmd.Execute())
}

func TestWatchCmd_UnknownAnalyzer(t *testing.T) {
	cmd, _ := newTestRoot(t, newWatchCmd())

	cmd.SetArgs([]string{"watch", "-a", "nope"})
	require.Error(t, cmd.Execute())
}
