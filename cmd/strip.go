package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeaudit/internal/domain"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

// stripCmd represents the strip command.
var stripCmd = newStripCmd()

var stripApplyFlag bool
var stripYesFlag bool
var stripTargetFlags []string

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [paths...]",
		Short: "Find and remove debug statements",
		Long: `Locates console.log calls (or the configured targets) in TypeScript and
JavaScript files. Without --apply the command only reports them. With --apply
the touched files are backed up and every call standing as its own statement is
removed; calls used inside expressions are listed for manual review.
` + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceArgs(cmd, args)
			if err != nil {
				return err
			}

			s, err := settings(cmd, []m.AnalyzerKind{m.AnalyzerStrip})
			if err != nil {
				return err
			}

			if len(stripTargetFlags) > 0 {
				s.StripTargets = stripTargetFlags
			}

			err = workflow.Strip(cmd.Context(), domain.StripArgs{
				SourceArgs: src,
				Settings:   s,
				Reports:    reportsDir(cmd),
				Apply:      stripApplyFlag,
				Yes:        stripYesFlag,
			})
			if errors.Is(err, m.ErrCancelled) {
				ui.DisplayMessage("Nothing changed")
				return nil
			}

			return err
		},
	}
	cmd.Flags().BoolVar(&stripApplyFlag, "apply", false, "rewrite the files instead of only reporting")
	cmd.Flags().BoolVarP(&stripYesFlag, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().StringArrayVar(&stripTargetFlags, "target", nil, "call to remove, e.g. console.debug (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(stripCmd)
}
