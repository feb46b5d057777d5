package parser

import (
	"testing"

	"github.com/coolcc/coolcc/firstfollow"
	"github.com/coolcc/coolcc/grammar"
	"github.com/coolcc/coolcc/lltable"
)

// buildExprGrammar builds:
//
//	E  -> T E'
//	E' -> + T E' | ε
//	T  -> id
//
// and compiles its LL(1) table, returning everything a Driver needs.
func buildExprGrammar(t *testing.T) (*grammar.Grammar, *lltable.Table) {
	t.Helper()
	symbols := grammar.NewSymbolTable()
	e, _ := symbols.RegisterNonTerminal("E")
	ep, _ := symbols.RegisterNonTerminal("E'")
	tr, _ := symbols.RegisterNonTerminal("T")
	plus, _ := symbols.RegisterTerminal("+")
	id, _ := symbols.RegisterTerminal("id")

	b := grammar.NewBuilder(symbols)
	_ = b.SetStart(e)
	_, _ = b.AddProduction(e, []grammar.Symbol{tr, ep}, "")
	_, _ = b.AddProduction(ep, []grammar.Symbol{plus, tr, ep}, "")
	_, _ = b.AddProduction(ep, nil, "")
	_, _ = b.AddProduction(tr, []grammar.Symbol{id}, "")

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build grammar: %v", err)
	}

	fst, err := firstfollow.First(g)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	flw, err := firstfollow.Follow(g, fst)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	tbl, err := lltable.Build(g, fst, flw)
	if err != nil {
		t.Fatalf("Build table: %v", err)
	}
	return g, tbl
}

func feed(t *testing.T, d *Driver, tokens ...string) error {
	t.Helper()
	for _, tok := range tokens {
		if err := d.Step(Lexeme{Token: tok, Text: tok}); err != nil {
			return err
		}
	}
	return nil
}

func TestDriverAcceptsSimpleExpression(t *testing.T) {
	g, tbl := buildExprGrammar(t)
	d := NewDriver(g, tbl, nil)

	if err := feed(t, d, "id", "+", "id", "$"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State() != Finished {
		t.Fatalf("expected Finished, got %v", d.State())
	}
}

func TestDriverAcceptsSingleTerm(t *testing.T) {
	g, tbl := buildExprGrammar(t)
	d := NewDriver(g, tbl, nil)

	if err := feed(t, d, "id", "$"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State() != Finished {
		t.Fatalf("expected Finished, got %v", d.State())
	}
}

func TestDriverRejectsMismatchedTerminal(t *testing.T) {
	g, tbl := buildExprGrammar(t)
	d := NewDriver(g, tbl, nil)

	err := feed(t, d, "+")
	if err == nil {
		t.Fatal("expected an error when the input starts with an unexpected terminal")
	}
	if d.State() != Error {
		t.Fatalf("expected Error state, got %v", d.State())
	}
}

func TestDriverRejectsTrailingGarbage(t *testing.T) {
	g, tbl := buildExprGrammar(t)
	d := NewDriver(g, tbl, nil)

	err := feed(t, d, "id", "id")
	if err == nil {
		t.Fatal("expected an error on unconsumed trailing input")
	}
}

func TestDriverDispatchesSemanticActions(t *testing.T) {
	g, tbl := buildExprGrammar(t)

	var reduced []string
	idProd := g.ProductionsFor(mustSymbol(t, g, "T"))[0]
	actions := map[grammar.ProductionID]Action{
		idProd.ID: func(args []*Node) (*Node, error) {
			reduced = append(reduced, "T")
			return &Node{Value: args[0].Lexeme.Text}, nil
		},
	}

	d := NewDriver(g, tbl, actions)
	if err := feed(t, d, "id", "$"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reduced) != 1 || reduced[0] != "T" {
		t.Fatalf("expected the T action to have fired once, got %v", reduced)
	}
}

func mustSymbol(t *testing.T, g *grammar.Grammar, name string) grammar.Symbol {
	t.Helper()
	sym, ok := g.Symbols().ToSymbol(name)
	if !ok {
		t.Fatalf("no such symbol %q", name)
	}
	return sym
}
