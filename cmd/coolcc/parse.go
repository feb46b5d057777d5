package main

import (
	"fmt"

	"github.com/coolcc/coolcc/coolerr"
	"github.com/coolcc/coolcc/firstfollow"
	"github.com/coolcc/coolcc/grammar"
	"github.com/coolcc/coolcc/internal/fileutil"
	"github.com/coolcc/coolcc/lltable"
	"github.com/coolcc/coolcc/parser"
	"github.com/coolcc/coolcc/scanner"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse a source file's token stream against the LL(1) table",
		Example: `  coolcc parse --lexer-definition-filename cool.lexdef --grammar-definition-filename cool.gram -f prog.cl`,
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("file", "f", "", "source file path")
	rootCmd.AddCommand(cmd)
}

// buildTable compiles a grammar-definition file down to its LL(1)
// table, returning the grammar too (the driver needs both).
func buildTable(path string) (*grammar.Grammar, *lltable.Table, error) {
	text, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.IoError, err)
	}
	def, err := parser.ParseDefinition(text)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.GrammarMalformed, err)
	}
	g, _, err := parser.BuildGrammar(def)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.GrammarMalformed, err)
	}
	fst, err := firstfollow.First(g)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.GrammarMalformed, err)
	}
	flw, err := firstfollow.Follow(g, fst)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.GrammarMalformed, err)
	}
	tbl, err := lltable.Build(g, fst, flw)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.GrammarAmbiguous, err)
	}
	return g, tbl, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	if *rootFlags.lexerDefinitionFilename == "" || *rootFlags.grammarDefinitionFilename == "" {
		return fmt.Errorf("--lexer-definition-filename and --grammar-definition-filename are required")
	}
	if *parseFlags.source == "" {
		return fmt.Errorf("-f/--file is required")
	}

	lexemes, _, err := scanFile(*rootFlags.lexerDefinitionFilename, *parseFlags.source)
	if err != nil {
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
	fmt.Println("parse succeeded")
	return nil
}

func feedLexeme(d *parser.Driver, lx *scanner.Lexeme) error {
	if err := d.Step(parser.Lexeme{Token: lx.Token, Text: lx.Text, Line: lx.Loc.Line}); err != nil {
		return coolerr.New(coolerr.ParserMismatch, err).At(lx.Loc.File, lx.Loc.Line, lx.Loc.Column, lx.Loc.LineText)
	}
	return nil
}
