package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/codeaudit/internal/domain"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

func TestViewCmd(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Reports: ".codeaudit-reports"}).Return(nil)

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_Filters(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{
		Reports:  "out",
		Analyzer: m.AnalyzerMethodLength,
		Latest:   true,
	}).Return(nil)

	cmd.SetArgs([]string{"view", "--reports", "out", "--analyzer", "methods", "--latest"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_UnknownAnalyzer(t *testing.T) {
	cmd, _ := newTestRoot(t, newViewCmd())

	cmd.SetArgs([]string{"view", "-a", "complexity"})
	require.Error(t, cmd.Execute())
}

func TestViewCmd_RejectsArgs(t *testing.T) {
	cmd, _ := newTestRoot(t, newViewCmd())

	cmd.SetArgs([]string{"view", "extra"})
	require.Error(t, cmd.Execute())
}
