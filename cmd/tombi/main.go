// Command tombi is a thin Cobra shell over the core packages — parse,
// format-check, lint, and sort — the way MacroPower-x/cmd/magicschema
// wraps its generator: flag parsing and I/O only, no business logic.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/internal/tlog"
)

func main() {
	root := &cobra.Command{
		Use:           "tombi",
		Short:         "TOML toolchain: parse, format-check, lint, and sort",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("log-level", "info", "log level: error, warn, info, debug")
	root.PersistentFlags().String("log-format", "logfmt", "log output format: logfmt, json")

	root.AddCommand(newParseCmd())
	root.AddCommand(newFormatCheckCmd())
	root.AddCommand(newLintCmd())
	root.AddCommand(newSortCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loggerFromCmd builds the schemastore/validator logger from the
// --log-level/--log-format persistent flags, writing to stderr so it
// never mixes into a command's stdout output.
func loggerFromCmd(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}
	return tlog.NewFromStrings(os.Stderr, level, format)
}
