package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// menuCmd represents the menu command.
var menuCmd = newMenuCmd()

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu [paths...]",
		Short: "Choose the analyzers to run from a menu",
		Long: `Opens a menu listing every analyzer and runs the selected ones. Choosing the
debug statement analyzer here only reports; use the strip command to remove them.
` + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			available := append(m.DefaultAnalyzers(), m.AnalyzerStrip)

			selected, err := ui.SelectAnalyzers(available)
			if errors.Is(err, m.ErrCancelled) || (err == nil && len(selected) == 0) {
				return nil
			}

			if err != nil {
				return err
			}

			return runAnalyzers(cmd, args, selected)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
