package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeaudit/internal/domain"
	m "github.com/mouse-blink/codeaudit/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

var viewAnalyzerFlag string
var viewLatestFlag bool

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated reports",
		Long:  "View previously generated reports from the reports directory, oldest first.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var analyzer m.AnalyzerKind

			if viewAnalyzerFlag != "" {
				parsed, err := m.ParseAnalyzer(viewAnalyzerFlag)
				if err != nil {
					return err
				}

				analyzer = parsed
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports:  reportsDir(cmd),
				Analyzer: analyzer,
				Latest:   viewLatestFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&viewAnalyzerFlag, "analyzer", "a", "", "only show reports of this analyzer (length, methods, docs or strip)")
	cmd.Flags().BoolVarP(&viewLatestFlag, "latest", "l", false, "only show the newest report of each analyzer")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
