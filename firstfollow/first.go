// Package firstfollow computes the FIRST and FOLLOW sets a grammar
// needs to build an LL(1) parsing table.
//
// Grounded on _examples/nihei9-vartan/grammar/first.go and follow.go
// (the entry/set/fixed-point shape) and
// original_source/src/parser/recursive_descent_parser_generator.cpp's
// ComputeFirst/ComputeFollow for the exact propagation rules,
// including the L != Xi guard on folding FOLLOW(L) into FOLLOW(Xi) that original source
// asserts and this package therefore also enforces (see follow.go).
package firstfollow

import (
	"fmt"

	"github.com/coolcc/coolcc/grammar"
)

// Entry is one symbol's FIRST (or FOLLOW) set: the terminals that can
// appear, plus a marker flag. In a FIRST set the marker means "this
// symbol's expansion can be empty" (EMPTY is a member); in a FOLLOW
// set the marker means "END can follow this symbol". The two sets
// never mix, so one flag serves both without ambiguity at any single
// call site.
type Entry struct {
	symbols map[grammar.Symbol]struct{}
	empty   bool
}

func newEntry() *Entry {
	return &Entry{symbols: map[grammar.Symbol]struct{}{}}
}

func (e *Entry) add(sym grammar.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *Entry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *Entry) merge(other *Entry) bool {
	if other == nil {
		return false
	}
	changed := false
	for sym := range other.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// HasEmpty reports whether EMPTY (for FIRST) or END (for FOLLOW) is a
// member of e.
func (e *Entry) HasEmpty() bool {
	return e.empty
}

// Symbols returns the terminal members of e, excluding EMPTY/END.
func (e *Entry) Symbols() []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	return syms
}

// Contains reports whether sym is a member of e.
func (e *Entry) Contains(sym grammar.Symbol) bool {
	_, ok := e.symbols[sym]
	return ok
}

// Set maps every grammar symbol to its Entry.
type Set struct {
	entries map[grammar.Symbol]*Entry
}

func (s *Set) find(sym grammar.Symbol) *Entry {
	e, ok := s.entries[sym]
	if !ok {
		e = newEntry()
		s.entries[sym] = e
	}
	return e
}

// Of returns the computed Entry for sym, or nil if sym is not part of
// the grammar this Set was computed for.
func (s *Set) Of(sym grammar.Symbol) *Entry {
	return s.entries[sym]
}

// First computes FIRST(X) for every terminal and non-terminal in g. A
// terminal's FIRST set is itself; a non-terminal's FIRST set is
// computed by a textbook fixed-point iteration over its productions:
// walk the RHS left to right, folding in each symbol's FIRST set
// (minus EMPTY) until a non-nullable symbol is hit or the RHS is
// exhausted, in which case EMPTY is added.
func First(g *grammar.Grammar) (*Set, error) {
	fst := &Set{entries: map[grammar.Symbol]*Entry{}}

	for _, t := range g.Terminals {
		e := fst.find(t)
		if t.IsEmpty() {
			e.addEmpty()
		} else {
			e.add(t)
		}
	}
	for _, nt := range g.NonTerminals {
		fst.find(nt)
	}

	for {
		more := false
		for _, p := range g.Productions {
			e := fst.find(p.LHS)
			changed, err := firstOfProduction(fst, e, p)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return fst, nil
}

func firstOfProduction(fst *Set, acc *Entry, p *grammar.Production) (bool, error) {
	if p.IsEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range p.RHS {
		if sym.IsEmpty() {
			continue
		}
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}

		e := fst.entries[sym]
		if e == nil {
			return false, fmt.Errorf("%w: no FIRST entry for %v", grammar.ErrGrammarMalformed, sym)
		}
		if acc.merge(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}

// OfSequence returns FIRST(Y1 Y2 ... Yn), the longest-nullable-prefix
// rule applied to an arbitrary symbol sequence (a production's RHS
// starting at some offset). It applies the same rule First applies to
// a whole RHS via firstOfProduction; Follow and lltable call it.
func OfSequence(fst *Set, seq []grammar.Symbol) *Entry {
	acc := newEntry()
	for _, sym := range seq {
		if sym.IsEmpty() {
			continue
		}
		if sym.IsTerminal() {
			acc.add(sym)
			return acc
		}
		e := fst.entries[sym]
		acc.merge(e)
		if e == nil || !e.empty {
			return acc
		}
	}
	acc.addEmpty()
	return acc
}
