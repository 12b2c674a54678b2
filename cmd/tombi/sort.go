package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/editor"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/query"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/syntax"
)

// newSortCmd walks root's items the same way query.Locate tracks table
// path (spec.md §4.2), resolving each array's and each table's governing
// schema (C5) and applying editor's two schema-guided transforms (C8):
// SortArrayValues per array, ReorderTableKeys per table's flat run of
// KEY_VALUE siblings. Requires a schema (via --schema or a #:schema
// hint) since neither transform has anything to do without one.
func newSortCmd() *cobra.Command {
	var schemaURI string
	var write bool
	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Reorder array values and table keys per the governing schema",
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
			src := string(data)

			result := parser.Parse(src, parser.V1_0)
			root := ast.NewRoot(result.Tree.Root())
			doc := document.Build(root)

			uri := schemaURI
			if uri == "" {
				uri = doc.SchemaURI
			}
			if uri == "" {
				return fmt.Errorf("no schema: pass --schema or add a #:schema hint")
			}

			ctx := context.Background()
			store := schemastore.New(schemastore.Options{}, logger)
			ds, err := store.TryGetDocumentSchema(ctx, uri)
			if err != nil {
				return err
			}
			if ds == nil {
				return fmt.Errorf("schema %q could not be resolved", uri)
			}

			var changes []editor.Change
			var tablePath document.Path
			var pending []editor.TableEntry
			arrayCounts := map[string]int{}

			flush := func() {
				if len(pending) == 0 {
					return
				}
				cur, err := query.ResolveSchemaAt(ctx, store, ds.Root, ds.SchemaURI, ds.Definitions, tablePath)
				if err == nil && cur != nil {
					cs, _ := editor.ReorderTableKeys(pending, cur.Value)
					changes = append(changes, cs...)
				}
				pending = nil
			}

			for _, it := range root.Items() {
				switch it.Kind() {
				case syntax.TABLE:
					flush()
					t, _ := it.AsTable()
					tablePath = fullKeyPath(t.Keys)
				case syntax.ARRAY_OF_TABLE:
					flush()
					a, _ := it.AsArrayOfTable()
					full := fullKeyPath(a.Keys)
					name := full.String()
					idx := arrayCounts[name]
					tablePath = full.Append(document.IndexAccessor(idx))
					arrayCounts[name] = idx + 1
				case syntax.KEY_VALUE:
					kv, ok := it.AsKeyValue()
					if !ok {
						continue
					}
					keys, hasKeys := kv.Keys()
					if !hasKeys {
						continue
					}
					segs := keys.Segments()
					if len(segs) != 1 {
						// Dotted keys inside a table body don't belong
						// to the flat ReorderTableKeys grouping (no
						// single owning KEY_VALUE row); skip sorting
						// their table membership, still consider their
						// value an array to sort.
					} else {
						tok, ok := segs[0].Token()
						if ok {
							pending = append(pending, editor.TableEntry{Key: unquote(tok.Text()), Node: kv})
						}
					}

					val, hasVal := kv.Value()
					if !hasVal {
						continue
					}
					arr, ok := val.AsArray()
					if !ok {
						continue
					}
					valuePath := tablePath
					if len(segs) > 0 {
						if tok, ok := segs[len(segs)-1].Token(); ok {
							valuePath = tablePath.Append(document.KeyAccessor(unquote(tok.Text())))
						}
					}
					cur, err := query.ResolveSchemaAt(ctx, store, ds.Root, ds.SchemaURI, ds.Definitions, valuePath)
					if err != nil || cur == nil || cur.Value == nil {
						continue
					}
					cs, err := editor.SortArrayValues(arr, cur.Value.ValuesOrderBy)
					if err == nil {
						changes = append(changes, cs...)
					}
				}
			}
			flush()

			out := editor.Apply(src, changes)
			if write && path != "" && path != "-" {
				return os.WriteFile(path, []byte(out), 0o644)
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaURI, "schema", "", "schema URI to sort against (overrides a #:schema hint)")
	cmd.Flags().BoolVar(&write, "write", false, "write the sorted result back to the file instead of stdout")
	return cmd
}

func fullKeyPath(keysFn func() (ast.Keys, bool)) document.Path {
	keys, ok := keysFn()
	if !ok {
		return nil
	}
	var p document.Path
	for _, seg := range keys.Segments() {
		tok, ok := seg.Token()
		if !ok {
			continue
		}
		p = p.Append(document.KeyAccessor(unquote(tok.Text())))
	}
	return p
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
