package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/parser"
)

func newParseCmd() *cobra.Command {
	var v11 bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a TOML file and print syntax diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(path)
			if err != nil {
				return err
			}
			version := parser.V1_0
			if v11 {
				version = parser.V1_1Preview
			}
			result := parser.Parse(string(data), version)
			for _, d := range result.Diagnostics {
				fmt.Printf("%s: %s: %s\n", d.Range, d.Severity, d.Message)
			}
			if len(result.Diagnostics) > 0 {
				return fmt.Errorf("%d syntax diagnostic(s)", len(result.Diagnostics))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&v11, "v1-1-preview", false, "parse with the TOML 1.1 preview grammar")
	return cmd
}
