package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lexFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lex",
		Short:   "Scan a source file and write its .cclex sidecar",
		Example: `  coolcc lex --lexer-definition-filename cool.lexdef -f prog.cl`,
		RunE:    runLex,
	}
	lexFlags.source = cmd.Flags().StringP("file", "f", "", "source file path")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	if *rootFlags.lexerDefinitionFilename == "" {
		return fmt.Errorf("--lexer-definition-filename is required")
	}
	if *lexFlags.source == "" {
		return fmt.Errorf("-f/--file is required")
	}

	lexemes, spec, err := scanFile(*rootFlags.lexerDefinitionFilename, *lexFlags.source)
	if err != nil {
		return err
	}
	if err := writeSidecar(*lexFlags.source, lexemes, spec); err != nil {
		return err
	}
	fmt.Printf("wrote %s.cclex (%d tokens)\n", *lexFlags.source, len(lexemes))
	return nil
}
