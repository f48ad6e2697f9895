package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	xebnf "golang.org/x/exp/ebnf"

	"github.com/dhamidi/combinator/diag"
	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/format"
	"github.com/dhamidi/combinator/parser"
)

func newEbnfCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar tools",
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfParseCmd(opts))

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := xebnf.Verify(grammar, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("verify grammar: %w", err)
			}
			if _, err := ebnf.Compile(grammar, startProduction); err != nil {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfParseCmd(opts *options) *cobra.Command {
	var startProduction string
	var outputFormat string
	var skip string

	cmd := &cobra.Command{
		Use:   "parse <grammar> [input]",
		Short: "Parse input with an EBNF grammar and print the syntax tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			startProduction = cmp.Or(startProduction, opts.cfg.Grammar.Start)
			outputFormat = cmp.Or(outputFormat, opts.cfg.Output.Format)
			skip = cmp.Or(skip, opts.cfg.Grammar.Skip)
			if startProduction == "" {
				return fmt.Errorf("no start production: use --start or set grammar.start")
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var compileOpts []ebnf.Option
			switch skip {
			case "whitespace":
			case "none":
				compileOpts = append(compileOpts, ebnf.WithSkip(parser.Pure[parser.Text](struct{}{})))
			default:
				return fmt.Errorf("unknown skip mode %q", skip)
			}

			grammar, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				return err
			}
			g, err := ebnf.Compile(grammar, startProduction, compileOpts...)
			if err != nil {
				return err
			}

			name, src, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			node, err := g.Parse(src)
			if err != nil {
				if d, ok := diag.FromError(name, src, err); ok {
					diag.NewRenderer(cmd.ErrOrStderr(), opts.cfg.Output.Color).Fprint(cmd.ErrOrStderr(), d)
				}
				return err
			}
			return enc.EncodeNode(node)
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production (default grammar.start)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: json, yaml or tree (default output.format)")
	cmd.Flags().StringVar(&skip, "skip", "", "what non-lexical productions skip: whitespace or none (default grammar.skip)")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return args[0], string(data), nil
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	for err != nil {
		if v := reflect.ValueOf(err); v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
		if unwrapped, ok := err.(interface{ Unwrap() error }); ok {
			err = unwrapped.Unwrap()
			continue
		}
		fmt.Fprintln(w, err)
		return
	}
}
