package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vhotmar/mff-vector-drawing-sub001/codebase"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/format"
	"github.com/vhotmar/mff-vector-drawing-sub001/project"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var languageName string
	var dumpTokens bool

	cmd := &cobra.Command{
		Use:           "parse <file>",
		Short:         "Parse a file with the language configured for it in " + project.FileName,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			proj, err := project.LoadFrom(filepath.Dir(filename))
			if err != nil {
				return err
			}

			var l *project.Language
			if languageName != "" {
				l = proj.Language(languageName)
				if l == nil {
					return fmt.Errorf("unknown language %q", languageName)
				}
			} else {
				var ok bool
				if l, ok = proj.LanguageFor(filename); !ok {
					return fmt.Errorf("no language configured for %s", filename)
				}
			}

			lang, err := l.Compile()
			if err != nil {
				return err
			}

			src, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			node, tokens, err := lang.Parse(src, filename)
			if dumpTokens {
				return format.EncodeTokens(os.Stdout, tokens)
			}
			if err != nil {
				var serr *parse.SyntaxError
				if errors.As(err, &serr) {
					newPrinter(os.Stderr).diagnostic(filename, codebase.Diagnostic{
						Line:     serr.Pos.Line,
						Column:   serr.Pos.Column,
						Severity: codebase.SeverityError,
						Message:  serr.Message(),
					})
					return reportedError{err}
				}
				return err
			}

			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			return enc.Encode(node)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVarP(&languageName, "language", "l", "", "language to use instead of the one matching the file extension")
	cmd.Flags().BoolVar(&dumpTokens, "tokens", false, "print the tokens instead of the syntax tree")

	return cmd
}
