// Package parser drives an LL(1) parsing table with an explicit
// stack, dispatching a registered semantic action at each reduction.
//
// Grounded on original_source/src/parser/recursive_descent_parser.cpp's
// RecursiveDescentParser::ProcessLexeme, adapted per this system's two
// deliberate departures from that source: the parsing-table lookup
// uses standard semantics (exactly one production in a cell expands;
// the source's `production_ids.size() == 1` guard is an inverted bug,
// not a behavior to keep), and a stack terminal is matched against the
// lexeme by token name rather than literal lexeme text, which the
// source does and which breaks for any token whose spelling varies
// (identifiers, numbers, strings).
package parser

import (
	"fmt"

	"github.com/coolcc/coolcc/grammar"
	"github.com/coolcc/coolcc/lltable"
)

// endTokenName is the token name a caller must feed once the scanner's
// input is exhausted, matching grammar.SymbolEnd's registered name.
const endTokenName = "$"

// State is the driver's overall status.
type State int

const (
	// Processing accepts further lexemes via Step.
	Processing State = iota
	// Finished means the stack emptied after consuming a lexeme that
	// matched the end marker: the parse succeeded.
	Finished
	// Error is a terminal state: no table cell or no terminal match was
	// found for some lexeme. The driver never recovers from it.
	Error
)

func (s State) String() string {
	switch s {
	case Processing:
		return "processing"
	case Finished:
		return "finished"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Lexeme is one token from a scanner, reduced to the fields the
// driver and semantic actions need: which terminal it is (by name,
// not spelling), its literal text, and its 1-based source line.
type Lexeme struct {
	Token string
	Text  string
	Line  int
}

// Action is a semantic action invoked when its production is reduced.
// args holds the child Nodes in left-to-right RHS order (a terminal
// child carries its matched Lexeme; a non-terminal child carries the
// Node its own reduction produced).
type Action func(args []*Node) (*Node, error)

// Node is a generic parse-tree node: either a terminal leaf (Lexeme
// set, Children nil) or a reduction result built by an Action.
type Node struct {
	Production *grammar.Production
	Lexeme     *Lexeme
	Children   []*Node
	Value      interface{}
}

// stackEntry is either a pending symbol (production is nil)
// or a reduction marker recording which production to reduce once
// every symbol pushed for its RHS has been consumed.
type stackEntry struct {
	symbol        grammar.Symbol
	isReduceMarker bool
	production    *grammar.Production
}

// Driver runs a predictive (table-driven, non-backtracking) parse.
type Driver struct {
	g       *grammar.Grammar
	table   *lltable.Table
	actions map[grammar.ProductionID]Action

	state   State
	stack   []stackEntry
	results []*Node // mirrors the source's reduction_store_: a LIFO scratch area for completed children awaiting their parent's reduction.
}

// NewDriver returns a Driver positioned at the grammar's start symbol.
func NewDriver(g *grammar.Grammar, table *lltable.Table, actions map[grammar.ProductionID]Action) *Driver {
	d := &Driver{
		g:       g,
		table:   table,
		actions: actions,
	}
	d.Reset()
	return d
}

// Reset returns the driver to its initial state: stack holding only
// the start symbol, Processing.
func (d *Driver) Reset() {
	d.state = Processing
	d.stack = []stackEntry{{symbol: d.g.Start}}
	d.results = nil
}

// State reports the driver's current status.
func (d *Driver) State() State {
	return d.state
}

// Step feeds one lexeme to the driver, expanding non-terminals and
// reducing completed productions until the lexeme is matched against
// a terminal on top of the stack (or the driver errors first).
func (d *Driver) Step(lex Lexeme) error {
	if d.state != Processing {
		return fmt.Errorf("parser: Step called while in state %v", d.state)
	}

	for {
		if len(d.stack) == 0 {
			if lex.Token == endTokenName {
				d.state = Finished
				return nil
			}
			d.state = Error
			return fmt.Errorf("parser: unexpected %q after the grammar's start symbol was fully reduced", lex.Token)
		}

		top := d.stack[len(d.stack)-1]

		if top.isReduceMarker {
			if err := d.reduce(top.production); err != nil {
				d.state = Error
				return err
			}
			continue
		}

		if top.symbol.IsTerminal() {
			text, ok := d.g.Symbols().ToText(top.symbol)
			if !ok || text != lex.Token {
				d.state = Error
				return fmt.Errorf("parser: expected token %q, got %q", text, lex.Token)
			}
			d.stack = d.stack[:len(d.stack)-1]
			lexCopy := lex
			d.results = append(d.results, &Node{Lexeme: &lexCopy})
			return nil
		}

		// top is a non-terminal: look up the table cell for (top, the
		// terminal named by lex.Token) and expand.
		termSym, ok := d.g.Symbols().ToSymbol(lex.Token)
		if !ok {
			d.state = Error
			return fmt.Errorf("parser: %q is not a terminal of this grammar", lex.Token)
		}
		prods := d.table.Lookup(top.symbol, termSym)
		if len(prods) != 1 {
			d.state = Error
			return fmt.Errorf("parser: no unambiguous expansion for (%v, %v), found %d candidate(s)", top.symbol, termSym, len(prods))
		}
		d.expand(prods[0])
	}
}

// expand replaces the top-of-stack non-terminal with a reduction
// marker followed by the production's RHS symbols pushed in reverse,
// so the leftmost RHS symbol is processed first.
func (d *Driver) expand(p *grammar.Production) {
	d.stack = d.stack[:len(d.stack)-1]
	d.stack = append(d.stack, stackEntry{isReduceMarker: true, production: p})
	for i := len(p.RHS) - 1; i >= 0; i-- {
		d.stack = append(d.stack, stackEntry{symbol: p.RHS[i]})
	}
}

// reduce pops the reduction marker, collects that production's
// children off the results scratch area (as many as its RHS had, in
// left-to-right order), invokes the registered Action if any, and
// pushes the resulting Node back as this reduction's own result.
func (d *Driver) reduce(p *grammar.Production) error {
	d.stack = d.stack[:len(d.stack)-1]

	n := len(p.RHS)
	if len(d.results) < n {
		return fmt.Errorf("parser: internal error reducing %v: expected %d children, have %d", p.LHS, n, len(d.results))
	}
	children := make([]*Node, n)
	copy(children, d.results[len(d.results)-n:])
	d.results = d.results[:len(d.results)-n]

	node := &Node{Production: p, Children: children}
	if action, ok := d.actions[p.ID]; ok {
		out, err := action(children)
		if err != nil {
			return fmt.Errorf("parser: semantic action for %v failed: %w", p.LHS, err)
		}
		if out != nil {
			out.Production = p
			node = out
		}
	}
	d.results = append(d.results, node)
	return nil
}

// Result returns the root parse-tree node once the driver has
// Finished. It returns nil if called before then.
func (d *Driver) Result() *Node {
	if d.state != Finished || len(d.results) != 1 {
		return nil
	}
	return d.results[0]
}
