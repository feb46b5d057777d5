package lltable

import (
	"strings"
	"testing"

	"github.com/coolcc/coolcc/firstfollow"
	"github.com/coolcc/coolcc/grammar"
)

// buildExprGrammar mirrors firstfollow's textbook example:
//
//	E  -> T E'
//	E' -> + T E' | ε
//	T  -> id
func buildExprGrammar(t *testing.T) *grammar.Grammar {
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
		t.Fatalf("Build: %v", err)
	}
	return g
}

func buildTable(t *testing.T) (*grammar.Grammar, *Table) {
	t.Helper()
	g := buildExprGrammar(t)
	fst, err := firstfollow.First(g)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	flw, err := firstfollow.Follow(g, fst)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	tbl, err := Build(g, fst, flw)
	if err != nil {
		t.Fatalf("Build table: %v", err)
	}
	return g, tbl
}

func TestTableSingleCellLookup(t *testing.T) {
	g, tbl := buildTable(t)
	eSym, _ := g.Symbols().ToSymbol("E")
	id, _ := g.Symbols().ToSymbol("id")

	prods := tbl.Lookup(eSym, id)
	if len(prods) != 1 {
		t.Fatalf("expected exactly one production for (E, id), got %d", len(prods))
	}
}

func TestTableEpsilonCellUsesFollow(t *testing.T) {
	g, tbl := buildTable(t)
	epSym, _ := g.Symbols().ToSymbol("E'")

	prods := tbl.Lookup(epSym, grammar.SymbolEnd)
	if len(prods) != 1 {
		t.Fatalf("expected exactly one production for (E', $), got %d", len(prods))
	}
	if !prods[0].IsEmpty() {
		t.Fatal("expected (E', $) to resolve to the epsilon production")
	}
}

func TestTableNoAmbiguityOnLL1Grammar(t *testing.T) {
	g := buildExprGrammar(t)
	fst, _ := firstfollow.First(g)
	flw, _ := firstfollow.Follow(g, fst)
	_, ambiguities := BuildAllowingAmbiguity(g, fst, flw)
	if len(ambiguities) != 0 {
		t.Fatalf("expected no ambiguities for an LL(1) grammar, got %d", len(ambiguities))
	}
}

func TestTableDetectsAmbiguity(t *testing.T) {
	// Start -> S; S -> a | a b -- both S productions start with 'a', so
	// (S, a) gets two entries: not LL(1). The wrapping start symbol keeps
	// the start symbol at exactly one production, as Build requires.
	symbols := grammar.NewSymbolTable()
	start, _ := symbols.RegisterNonTerminal("Start")
	s, _ := symbols.RegisterNonTerminal("S")
	a, _ := symbols.RegisterTerminal("a")
	bTerm, _ := symbols.RegisterTerminal("b")

	b := grammar.NewBuilder(symbols)
	_ = b.SetStart(start)
	_, _ = b.AddProduction(start, []grammar.Symbol{s}, "")
	_, _ = b.AddProduction(s, []grammar.Symbol{a}, "")
	_, _ = b.AddProduction(s, []grammar.Symbol{a, bTerm}, "")

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

	_, err = Build(g, fst, flw)
	if err == nil {
		t.Fatal("expected Build to fail on an ambiguous grammar")
	}

	_, ambiguities := BuildAllowingAmbiguity(g, fst, flw)
	if len(ambiguities) != 1 {
		t.Fatalf("expected exactly one ambiguous cell, got %d", len(ambiguities))
	}
}

func TestDumpRendersEveryNonEmptyCell(t *testing.T) {
	_, tbl := buildTable(t)
	dump := tbl.Dump()
	if !strings.Contains(dump, "E") || !strings.Contains(dump, "id") {
		t.Fatalf("expected dump to mention E and id, got:\n%s", dump)
	}
	for _, cell := range []string{"E , id -> ", "E' , + -> ", "E' , $ -> ", "T , id -> "} {
		if !strings.Contains(dump, cell) {
			t.Fatalf("expected dump to contain a line for cell %q, got:\n%s", cell, dump)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	_, tbl := buildTable(t)
	first, err := tbl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := tbl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("expected Encode to be deterministic across repeated calls")
	}
}
