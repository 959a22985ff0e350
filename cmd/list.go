package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeaudit/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List the source files that would be analyzed",
		Long:  "List the source files selected by the paths, kinds and exclusions, with their type and size.\n" + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{SourceArgs: src})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
