package lltable

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/coolcc/coolcc/grammar"
)

// Dump renders the table as human-readable text: one line per
// non-empty cell, "non-terminal , terminal -> ids", listing the first
// eight hex digits of each production ID the cell holds; empty cells
// are not printed. Grounded on
// original_source/src/parser/recursive_descent_parser_generator.cpp's
// DumpParsingTable/WriteParsingTable, which render the same grid for
// debugging before the table is serialized.
func (t *Table) Dump() string {
	var b strings.Builder
	for _, nt := range t.g.NonTerminals {
		ntText, _ := t.g.Symbols().ToText(nt)
		terms := make([]grammar.Symbol, 0, len(t.cells[nt]))
		for term := range t.cells[nt] {
			terms = append(terms, term)
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
		for _, term := range terms {
			termText, _ := t.g.Symbols().ToText(term)
			prods := t.cells[nt][term]
			ids := make([]string, len(prods))
			for i, p := range prods {
				ids[i] = p.ID.String()[:8]
			}
			fmt.Fprintf(&b, "%s , %s -> %s\n", ntText, termText, strings.Join(ids, ","))
		}
	}
	return b.String()
}

// encodedCell is the JSON shape of one populated table cell: the
// non-terminal and terminal names (not the packed Symbol values,
// which are an implementation detail of this run) and the production
// IDs it holds, in construction order.
type encodedCell struct {
	NonTerminal string   `json:"non_terminal"`
	Terminal    string   `json:"terminal"`
	Productions []string `json:"productions"`
}

// encodedTable is the full persisted table: every production the
// grammar declares (so a consumer can resolve an ID to its LHS/RHS/
// semantic action without re-deriving the grammar) plus the non-empty
// cells.
type encodedTable struct {
	Start       string            `json:"start"`
	Productions []encodedProd     `json:"productions"`
	Cells       []encodedCell     `json:"cells"`
}

type encodedProd struct {
	ID     string   `json:"id"`
	LHS    string   `json:"lhs"`
	RHS    []string `json:"rhs"`
	Action string   `json:"action"`
}

// Encode renders the table as deterministic JSON: a downstream code
// generator consumes this format (the spec's "persisted parser
// tables"), so cell and production order must be reproducible across
// runs over the same grammar-definition file, not merely valid JSON.
func (t *Table) Encode() ([]byte, error) {
	symbols := t.g.Symbols()
	startText, _ := symbols.ToText(t.g.Start)

	enc := encodedTable{Start: startText}

	for _, p := range t.g.Productions {
		rhsText := make([]string, len(p.RHS))
		for i, sym := range p.RHS {
			text, _ := symbols.ToText(sym)
			rhsText[i] = text
		}
		lhsText, _ := symbols.ToText(p.LHS)
		enc.Productions = append(enc.Productions, encodedProd{
			ID:     p.ID.String(),
			LHS:    lhsText,
			RHS:    rhsText,
			Action: p.Action,
		})
	}

	for _, nt := range t.g.NonTerminals {
		ntText, _ := symbols.ToText(nt)
		terms := make([]grammar.Symbol, 0, len(t.cells[nt]))
		for term := range t.cells[nt] {
			terms = append(terms, term)
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
		for _, term := range terms {
			termText, _ := symbols.ToText(term)
			prods := t.cells[nt][term]
			ids := make([]string, len(prods))
			for i, p := range prods {
				ids[i] = p.ID.String()
			}
			enc.Cells = append(enc.Cells, encodedCell{
				NonTerminal: ntText,
				Terminal:    termText,
				Productions: ids,
			})
		}
	}

	return json.MarshalIndent(enc, "", "  ")
}
