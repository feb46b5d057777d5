// Package lltable builds and renders an LL(1) parsing table: for each
// (non-terminal, terminal) pair, the productions that expand to
// without lookahead past the terminal. A correctly LL(1) grammar has
// at most one production per cell; a cell with more than one is an
// ambiguity the builder reports rather than guesses around.
//
// Grounded on original_source/src/parser/recursive_descent_parser_generator.cpp's
// ComputeParsingTable (FIRST-of-production plus FOLLOW-of-LHS-on-nullable
// fill rule) and _examples/nihei9-vartan/grammar/lexical/dfa/dfa.go's
// hash-keyed-map style for the table's own storage.
package lltable

import (
	"fmt"
	"sort"

	"github.com/coolcc/coolcc/firstfollow"
	"github.com/coolcc/coolcc/grammar"
)

// Table is an LL(1) parsing table keyed by (non-terminal, terminal).
type Table struct {
	g     *grammar.Grammar
	cells map[grammar.Symbol]map[grammar.Symbol][]*grammar.Production
}

// Ambiguity records a cell that received more than one production
// during construction.
type Ambiguity struct {
	NonTerminal grammar.Symbol
	Terminal    grammar.Symbol
	Productions []*grammar.Production
}

// ErrAmbiguousGrammar is the sentinel wrapped by Build when one or
// more cells are ambiguous; callers interested in the detail should
// call BuildAllowingAmbiguity and inspect the returned Ambiguity list
// themselves.
var ErrAmbiguousGrammar = fmt.Errorf("grammar is not LL(1)")

// Build constructs the LL(1) table for g and fails if any cell is
// ambiguous.
func Build(g *grammar.Grammar, fst *firstfollow.Set, flw *firstfollow.Set) (*Table, error) {
	tbl, ambiguities := BuildAllowingAmbiguity(g, fst, flw)
	if len(ambiguities) > 0 {
		return nil, fmt.Errorf("%w: %d ambiguous cell(s), first at %v/%v", ErrAmbiguousGrammar, len(ambiguities), ambiguities[0].NonTerminal, ambiguities[0].Terminal)
	}
	return tbl, nil
}

// BuildAllowingAmbiguity constructs the table and additionally
// collects every cell that ended up with more than one production, in
// a deterministic order (by non-terminal and terminal declaration
// order), so a caller can render a full diagnostic report instead of
// stopping at the first conflict.
func BuildAllowingAmbiguity(g *grammar.Grammar, fst *firstfollow.Set, flw *firstfollow.Set) (*Table, []Ambiguity) {
	tbl := &Table{
		g:     g,
		cells: map[grammar.Symbol]map[grammar.Symbol][]*grammar.Production{},
	}
	for _, nt := range g.NonTerminals {
		tbl.cells[nt] = map[grammar.Symbol][]*grammar.Production{}
	}

	for _, p := range g.Productions {
		firstOfProd := firstfollow.OfSequence(fst, p.RHS)
		for _, t := range firstOfProd.Symbols() {
			tbl.addCell(p.LHS, t, p)
		}
		if firstOfProd.HasEmpty() {
			flwEntry := flw.Of(p.LHS)
			if flwEntry != nil {
				for _, t := range flwEntry.Symbols() {
					tbl.addCell(p.LHS, t, p)
				}
				if flwEntry.HasEmpty() {
					tbl.addCell(p.LHS, grammar.SymbolEnd, p)
				}
			}
		}
	}

	var ambiguities []Ambiguity
	for _, nt := range g.NonTerminals {
		terms := make([]grammar.Symbol, 0, len(tbl.cells[nt]))
		for t := range tbl.cells[nt] {
			terms = append(terms, t)
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
		for _, t := range terms {
			if len(tbl.cells[nt][t]) > 1 {
				ambiguities = append(ambiguities, Ambiguity{
					NonTerminal: nt,
					Terminal:    t,
					Productions: tbl.cells[nt][t],
				})
			}
		}
	}

	return tbl, ambiguities
}

func (t *Table) addCell(nt, term grammar.Symbol, p *grammar.Production) {
	t.cells[nt][term] = append(t.cells[nt][term], p)
}

// Lookup returns the productions registered for (nt, term). Standard
// LL(1) semantics apply: exactly one production means the parser
// expands with it; zero or more than one is an error state for the
// driver to report, never guessed around.
func (t *Table) Lookup(nt, term grammar.Symbol) []*grammar.Production {
	return t.cells[nt][term]
}
