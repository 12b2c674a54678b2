package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/validator"
)

func newLintCmd() *cobra.Command {
	var schemaURI string
	var strict bool
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Parse, build, and (with --schema) validate a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(path)
			if err != nil {
				return err
			}
			logger, err := loggerFromCmd(cmd)
			if err != nil {
				return err
			}
			result := parser.Parse(string(data), parser.V1_0)
			root := ast.NewRoot(result.Tree.Root())
			doc := document.Build(root)

			var diags []diagnostic.Diagnostic
			diags = append(diags, result.Diagnostics...)
			diags = append(diags, doc.Diagnostics...)

			uri := schemaURI
			if uri == "" {
				uri = doc.SchemaURI
			}
			if uri != "" {
				ctx := context.Background()
				store := schemastore.New(schemastore.Options{Strict: strict}, logger)
				ds, err := store.TryGetDocumentSchema(ctx, uri)
				if err != nil {
					return err
				}
				if ds != nil {
					vctx := validator.Context{Store: store, Strict: strict}
					vdiags, err := validator.Validate(ctx, vctx, doc.Root, ds.Root, ds.SchemaURI, ds.Definitions)
					if err != nil {
						return err
					}
					diags = append(diags, vdiags...)
				}
			}

			for _, d := range diags {
				fmt.Printf("%s: %s: %s\n", d.Range, d.Severity, d.Message)
			}
			if len(diags) > 0 {
				return fmt.Errorf("%d diagnostic(s)", len(diags))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaURI, "schema", "", "schema URI to validate against (overrides a #:schema hint)")
	cmd.Flags().BoolVar(&strict, "strict", true, "reject additional properties not allowed by the schema")
	return cmd
}
