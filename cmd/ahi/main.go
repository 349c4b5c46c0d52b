package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line args and returns the exit code. Errors that
// a command has not printed itself are written to stderr.
func run(args []string, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			newPrinter(stderr).error(err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "ahi",
		Short:         "Grammar-driven parsing tools",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbose, path)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
