package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coolcc",
	Short: "Compile a COOL lexer/grammar definition and drive it over a source file",
	Long: `coolcc provides three features:
- Scans a source file against a lexer-definition file and writes a .cclex sidecar.
- Parses a token stream against a grammar-definition file's LL(1) table.
- Runs both stages back to back over one source file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = struct {
	lexerDefinitionFilename   *string
	grammarDefinitionFilename *string
}{}

func init() {
	rootFlags.lexerDefinitionFilename = rootCmd.PersistentFlags().String("lexer-definition-filename", "", "lexer-definition file path")
	rootFlags.grammarDefinitionFilename = rootCmd.PersistentFlags().String("grammar-definition-filename", "", "grammar-definition file path")
}

// Execute runs the root command, printing any returned error to
// stderr before propagating it to main for the process exit code.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
