package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/combinator/diag"
	"github.com/dhamidi/combinator/format"
	"github.com/dhamidi/combinator/json"
)

var errInvalidDocuments = errors.New("invalid documents")

type document struct {
	name  string
	src   string
	value json.Value
	err   error
}

func newJSONCmd(opts *options) *cobra.Command {
	var outputFormat string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "json [file...]",
		Short: "Decode JSON documents and print them",
		Long: `Decode each file, or standard input when no file is given, and print
the decoded value. Files are decoded concurrently; results are printed in
argument order and failures are reported with their source location.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(cmp.Or(outputFormat, opts.cfg.Output.Format), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			docs, err := readDocuments(cmd, args)
			if err != nil {
				return err
			}
			if err := decodeAll(cmd.Context(), docs); err != nil {
				return err
			}

			r := diag.NewRenderer(cmd.ErrOrStderr(), opts.cfg.Output.Color && !noColor)
			failed := 0
			for _, doc := range docs {
				if doc.err != nil {
					failed++
					if d, ok := diag.FromError(doc.name, doc.src, doc.err); ok {
						r.Fprint(cmd.ErrOrStderr(), d)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", doc.name, doc.err)
					}
					continue
				}
				if err := enc.EncodeValue(doc.value); err != nil {
					return fmt.Errorf("encode %s: %w", doc.name, err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidDocuments, failed, len(docs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: json, yaml or tree (default output.format)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	return cmd
}

// readDocuments reads the named files concurrently, or standard input when
// there are none.
func readDocuments(cmd *cobra.Command, names []string) ([]*document, error) {
	if len(names) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []*document{{name: "<stdin>", src: string(data)}}, nil
	}

	docs := make([]*document, len(names))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			docs[i] = &document{name: name, src: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// decodeAll decodes every document in place. A document that fails to
// decode records its error and does not stop the others; only a cancelled
// context does.
func decodeAll(ctx context.Context, docs []*document) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc.value, doc.err = json.Decode(doc.src)
			if doc.err != nil {
				log.Debugf("%s: %s", doc.name, doc.err)
			}
			return nil
		})
	}
	return g.Wait()
}
