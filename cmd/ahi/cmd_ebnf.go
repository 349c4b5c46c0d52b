package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/grammar"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/lex"
	"github.com/vhotmar/mff-vector-drawing-sub001/ebnf/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/format"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfLexCmd())
	cmd.AddCommand(newEbnfParseCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(os.Stdout)

			g, err := grammar.ParseFile(args[0])
			if err != nil {
				return p.report(err)
			}

			if err := grammar.Verify(g, startProduction); err != nil {
				return p.report(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks for undefined names)")

	return cmd
}

// tokenOptions turns a comma-separated list of token productions into lexer
// options.
func tokenOptions(list string) []lex.Option {
	if list == "" {
		return nil
	}
	return []lex.Option{lex.WithTokens(strings.Split(list, ",")...)}
}

func newEbnfLexCmd() *cobra.Command {
	var tokenList string

	cmd := &cobra.Command{
		Use:           "lex <grammar> <file>",
		Short:         "Tokenize a file with the token productions of a grammar",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lex.LoadGrammar(args[0])
			if err != nil {
				return newPrinter(os.Stderr).report(err)
			}

			src, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			l, err := lex.NewLexer(g, src, args[1], tokenOptions(tokenList)...)
			if err != nil {
				return newPrinter(os.Stderr).report(err)
			}
			tokens, err := l.Tokenize()
			if err != nil {
				return err
			}
			return format.EncodeTokens(os.Stdout, tokens)
		},
	}

	cmd.Flags().StringVar(&tokenList, "tokens", "", "comma-separated token productions (default: every upper-case production)")

	return cmd
}

func newEbnfParseCmd() *cobra.Command {
	var startProduction string
	var lexerFile string
	var tokenList string
	var skipKinds []string
	var outputFormat string

	cmd := &cobra.Command{
		Use:           "parse <grammar> <file>",
		Short:         "Parse a file with a grammar and print its syntax tree",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			g, err := grammar.ParseFile(args[0])
			if err != nil {
				return newPrinter(os.Stderr).report(err)
			}
			lexer := g
			if lexerFile != "" {
				if lexer, err = grammar.ParseFile(lexerFile); err != nil {
					return newPrinter(os.Stderr).report(err)
				}
			}

			lang, err := parse.NewLanguage(lexer, g, startProduction, skipKinds, tokenOptions(tokenList)...)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			node, _, err := lang.Parse(src, args[1])
			if err != nil {
				return newPrinter(os.Stderr).report(err)
			}
			return enc.Encode(node)
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVar(&lexerFile, "lexer", "", "separate grammar with the token productions")
	cmd.Flags().StringVar(&tokenList, "tokens", "", "comma-separated token productions (default: every upper-case production)")
	cmd.Flags().StringSliceVar(&skipKinds, "skip", nil, "token kinds to skip (default: WhiteSpace,Comment)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.MarkFlagRequired("start")

	return cmd
}
