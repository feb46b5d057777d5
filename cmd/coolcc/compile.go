package main

import (
	"fmt"

	"github.com/coolcc/coolcc/coolerr"
	"github.com/coolcc/coolcc/parser"
	"github.com/coolcc/coolcc/scanner"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Run the scanner and parser stages back to back over one source file",
		Example: `  coolcc compile --lexer-definition-filename cool.lexdef --grammar-definition-filename cool.gram -f prog.cl`,
		RunE:    runCompile,
	}
	compileFlags.source = cmd.Flags().StringP("file", "f", "", "source file path")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if *rootFlags.lexerDefinitionFilename == "" || *rootFlags.grammarDefinitionFilename == "" {
		return fmt.Errorf("--lexer-definition-filename and --grammar-definition-filename are required")
	}
	if *compileFlags.source == "" {
		return fmt.Errorf("-f/--file is required")
	}

	lexemes, lspec, err := scanFile(*rootFlags.lexerDefinitionFilename, *compileFlags.source)
	if err != nil {
		return err
	}
	if err := writeSidecar(*compileFlags.source, lexemes, lspec); err != nil {
		return err
	}

	g, tbl, err := buildTable(*rootFlags.grammarDefinitionFilename)
	if err != nil {
		return err
	}

	d := parser.NewDriver(g, tbl, nil)
	for _, lx := range lexemes {
		if err := feedLexeme(d, lx); err != nil {
			return err
		}
	}
	if err := feedLexeme(d, &scanner.Lexeme{Token: "$", Text: ""}); err != nil {
		return err
	}
	if d.State() != parser.Finished {
		return coolerr.New(coolerr.ParserMismatch, fmt.Errorf("parse ended in state %v", d.State()))
	}

	root := d.Result()
	fmt.Printf("wrote %s.cclex (%d tokens); parse succeeded, root production=%v\n", *compileFlags.source, len(lexemes), root.Production)
	return nil
}
