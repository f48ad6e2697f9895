package main

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/combinator/ebnf"
	"github.com/dhamidi/combinator/lsp"
)

func newLSPCmd(opts *options) *cobra.Command {
	var grammarFile string
	var startProduction string
	var ext string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdio that publishes parse errors of open
documents. JSON documents are always checked; --grammar adds a checker for
documents with the extension given by --ext.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startProduction = cmp.Or(startProduction, opts.cfg.Grammar.Start)

			var serverOpts []lsp.Option
			if grammarFile != "" {
				if ext == "" || startProduction == "" {
					return fmt.Errorf("--grammar requires --ext and --start")
				}
				grammar, err := ebnf.LoadGrammar(grammarFile)
				if err != nil {
					return err
				}
				g, err := ebnf.Compile(grammar, startProduction)
				if err != nil {
					return err
				}
				serverOpts = append(serverOpts, lsp.WithChecker(ext, func(src string) error {
					_, err := g.Parse(src)
					return err
				}))
			}

			log.Infof("starting language server %s", version)
			server := lsp.NewServer(version, serverOpts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar for additional documents")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production of --grammar")
	cmd.Flags().StringVar(&ext, "ext", "", "file extension checked with --grammar, e.g. .calc")

	return cmd
}
