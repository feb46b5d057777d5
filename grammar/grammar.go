package grammar

import "fmt"

// Grammar is an ordered context-free grammar: its terminals,
// non-terminals, and productions are all kept in declaration order so
// that table dumps and diagnostics are deterministic and reproducible
// across runs of the same input file.
type Grammar struct {
	symbols     *SymbolTable
	Terminals   []Symbol
	NonTerminals []Symbol
	Productions []*Production
	Start       Symbol
}

// Builder accumulates productions against a SymbolTable and produces
// an immutable Grammar. Grounded on
// _examples/nihei9-vartan/grammar/production.go's productionSet, kept
// ordered (a plain slice plus a dedup set) rather than vartan's
// lhs-keyed map, since this grammar's productions must be visited in
// declaration order for the LL(1) table builder's ambiguity
// diagnostics to be reproducible.
type Builder struct {
	symbols  *SymbolTable
	prods    []*Production
	seen     map[ProductionID]bool
	start    Symbol
}

// NewBuilder returns a Builder over an already-populated SymbolTable
// (every terminal/non-terminal the grammar will use must be
// registered on it before productions referencing them are added).
func NewBuilder(symbols *SymbolTable) *Builder {
	return &Builder{
		symbols: symbols,
		seen:    map[ProductionID]bool{},
	}
}

// AddProduction appends a production in the order given, rejecting an
// exact duplicate (same LHS and RHS).
func (b *Builder) AddProduction(lhs Symbol, rhs []Symbol, action string) (*Production, error) {
	p, err := NewProduction(lhs, rhs, action)
	if err != nil {
		return nil, err
	}
	if b.seen[p.ID] {
		return nil, fmt.Errorf("%w: duplicate production for %v -> %v", ErrGrammarMalformed, lhs, rhs)
	}
	b.seen[p.ID] = true
	b.prods = append(b.prods, p)
	return p, nil
}

// SetStart records the grammar's start symbol.
func (b *Builder) SetStart(sym Symbol) error {
	if err := b.symbols.SetStart(sym); err != nil {
		return err
	}
	b.start = sym
	return nil
}

// Build validates and returns the finished Grammar. It requires a
// start symbol and exactly one production for it.
func (b *Builder) Build() (*Grammar, error) {
	if b.start.IsNil() {
		return nil, fmt.Errorf("%w: grammar has no start symbol", ErrGrammarMalformed)
	}
	startProds := 0
	for _, p := range b.prods {
		if p.LHS == b.start {
			startProds++
		}
	}
	if startProds == 0 {
		return nil, fmt.Errorf("%w: start symbol %v has no production", ErrGrammarMalformed, b.start)
	}
	if startProds > 1 {
		return nil, fmt.Errorf("%w: start symbol %v has %d productions, want exactly one", ErrGrammarMalformed, b.start, startProds)
	}

	return &Grammar{
		symbols:      b.symbols,
		Terminals:    b.symbols.Terminals(),
		NonTerminals: b.symbols.NonTerminals(),
		Productions:  b.prods,
		Start:        b.start,
	}, nil
}

// Symbols returns the grammar's underlying symbol table, for name
// resolution by callers rendering diagnostics.
func (g *Grammar) Symbols() *SymbolTable {
	return g.symbols
}

// ProductionsFor returns every production whose LHS is sym, in
// declaration order.
func (g *Grammar) ProductionsFor(sym Symbol) []*Production {
	var ps []*Production
	for _, p := range g.Productions {
		if p.LHS == sym {
			ps = append(ps, p)
		}
	}
	return ps
}
