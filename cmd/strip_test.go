package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/codeaudit/internal/domain"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

func TestStripCmd_DryRunByDefault(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newStripCmd())

	mockWorkflow.On("Strip", mock.Anything, mock.MatchedBy(func(args domain.StripArgs) bool {
		return !args.Apply &&
			!args.Yes &&
			assert.ObjectsAreEqual([]string{"console.log"}, args.Settings.StripTargets) &&
			args.Settings.BackupDir == m.Path(".codeaudit-backups") &&
			args.Reports == m.Path(".codeaudit-reports")
	})).Return(nil)

	cmd.SetArgs([]string{"strip", "./src/..."})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_ApplyWithTargets(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newStripCmd())

	mockWorkflow.On("Strip", mock.Anything, mock.MatchedBy(func(args domain.StripArgs) bool {
		return args.Apply &&
			args.Yes &&
			args.Settings.StripTop == 5 &&
			assert.ObjectsAreEqual([]string{"console.debug", "console.trace"}, args.Settings.StripTargets)
	})).Return(nil)

	cmd.SetArgs([]string{"strip", "--apply", "-y", "--top", "5", "--target", "console.debug", "--target", "console.trace"})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_DeclinedIsNotAnError(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newStripCmd())
	mockUI := useMockUI(t)

	mockWorkflow.On("Strip", mock.Anything, mock.Anything).Return(m.ErrCancelled)
	mockUI.On("DisplayMessage", "Nothing changed").Return()

	cmd.SetArgs([]string{"strip", "--apply"})
	require.NoError(t, cmd.Execute())
}

func TestStripCmd_RejectsThreshold(t *testing.T) {
	cmd, _ := newTestRoot(t, newStripCmd())

	cmd.SetArgs([]string{"strip", "--threshold", "10"})
	require.Error(t, cmd.Execute())
}
