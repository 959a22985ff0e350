package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

const pathsHelp = `
Paths default to ./... (the working directory, recursively). A path ending in
/... is walked recursively, any other directory only at its top level.`

var lengthCmd = newLengthCmd()
var methodsCmd = newMethodsCmd()
var docsCmd = newDocsCmd()
var allCmd = newAllCmd()

func newAnalyzerCmd(use, short, long string, analyzers ...m.AnalyzerKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [paths...]",
		Short: short,
		Long:  long + "\n" + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzers(cmd, args, analyzers)
		},
	}
}

func newLengthCmd() *cobra.Command {
	return newAnalyzerCmd("length",
		"Report files longer than the line threshold",
		`Counts the total, code, comment and blank lines of every file and lists the
files above the threshold (400 lines unless configured), longest first.`,
		m.AnalyzerFileLength)
}

func newMethodsCmd() *cobra.Command {
	return newAnalyzerCmd("methods",
		"Report functions and methods with long bodies",
		`Measures the code lines inside every function, method, arrow function,
accessor and constructor body and lists those above the threshold
(14 lines unless configured), longest first.`,
		m.AnalyzerMethodLength)
}

func newDocsCmd() *cobra.Command {
	return newAnalyzerCmd("docs",
		"Report functions and methods without documentation comments",
		`Checks that named functions, methods, accessors and constructors are
preceded by a /** */ documentation comment and reports the coverage
together with the undocumented constructs.`,
		m.AnalyzerDocCoverage)
}

func newAllCmd() *cobra.Command {
	return newAnalyzerCmd("all",
		"Run the length, methods and docs analyzers",
		`Scans every file once and runs the file length, method length and
documentation coverage analyzers over the result.`,
		m.DefaultAnalyzers()...)
}

func init() {
	rootCmd.AddCommand(lengthCmd, methodsCmd, docsCmd, allCmd)
}
