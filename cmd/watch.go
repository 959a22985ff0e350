package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeaudit/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

var watchAnalyzerFlags []string

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-run the analyzers whenever a source file changes",
		Long: `Runs the selected analyzers once, then again after every burst of changes to
the watched sources, until interrupted with Ctrl+C.
` + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzers, err := parseAnalyzers(watchAnalyzerFlags)
			if err != nil {
				return err
			}

			analyze, err := analyzeArgs(cmd, args, analyzers)
			if err != nil {
				return err
			}

			err = workflow.Watch(cmd.Context(), domain.WatchArgs{AnalyzeArgs: analyze})
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}
	cmd.Flags().StringArrayVarP(&watchAnalyzerFlags, "analyzer", "a", nil, "analyzer to run: length, methods, docs or strip (can be repeated, default all read-only analyzers)")

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
