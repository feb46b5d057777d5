package parser

import (
	"fmt"
	"strings"

	"github.com/coolcc/coolcc/grammar"
	"github.com/coolcc/coolcc/internal/textutil"
)

// rawProduction is one PRODUCTIONS entry before its symbols are
// resolved against a SymbolTable.
type rawProduction struct {
	lhs    string
	rhs    []string
	action string
}

// Definition is a grammar-definition file (§6), parsed but not yet
// built into a *grammar.Grammar: INCLUDES is opaque text for an
// external code generator, Terminals/NonTerminals are declaration
// ordered, and Productions carries each rule's opaque action body
// verbatim for later dispatch-table construction.
type Definition struct {
	Includes     []string
	Terminals    []string
	NonTerminals []string
	Productions  []rawProduction
}

const (
	gsectionNone       = ""
	gsectionIncludes   = "INCLUDES"
	gsectionTerminals  = "TERMINALS"
	gsectionNonTerms   = "NONTERMINALS"
	gsectionProductions = "PRODUCTIONS"
)

// ParseDefinition parses a grammar-definition file's text (§6) into a
// Definition. Semantic-action bodies are matched from the '{'
// beginning a line to its balancing '}', counting nested braces
// (unlike the lexer-definition file's single-brace-pair regex
// bodies), since an action may contain arbitrary generated-code
// braces.
func ParseDefinition(text string) (*Definition, error) {
	def := &Definition{}
	section := gsectionNone

	lines := textutil.Split(text, '\n')
	var pendingLHS string
	var pendingRHS []string

	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		line := stripLineComment(raw)
		trimmed := textutil.Trim(line)
		if trimmed == "" {
			continue
		}

		switch trimmed {
		case gsectionIncludes, gsectionTerminals, gsectionNonTerms, gsectionProductions:
			section = trimmed
			continue
		}

		switch section {
		case gsectionIncludes:
			def.Includes = append(def.Includes, line)
		case gsectionTerminals:
			def.Terminals = append(def.Terminals, trimmed)
		case gsectionNonTerms:
			def.NonTerminals = append(def.NonTerminals, trimmed)
		case gsectionProductions:
			if strings.Contains(trimmed, ":") {
				lhs, rhs, err := parseProductionHead(trimmed)
				if err != nil {
					return nil, fmt.Errorf("parser: line %d: %w", i+1, err)
				}
				pendingLHS, pendingRHS = lhs, rhs
				continue
			}
			if strings.HasPrefix(trimmed, "{") {
				body, consumed, err := readActionBody(lines, i)
				if err != nil {
					return nil, fmt.Errorf("parser: line %d: %w", i+1, err)
				}
				if pendingLHS == "" {
					return nil, fmt.Errorf("parser: line %d: action body with no preceding production head", i+1)
				}
				def.Productions = append(def.Productions, rawProduction{
					lhs:    pendingLHS,
					rhs:    pendingRHS,
					action: body,
				})
				pendingLHS = ""
				pendingRHS = nil
				i = consumed
				continue
			}
			return nil, fmt.Errorf("parser: line %d: expected a production head or action body, got %q", i+1, trimmed)
		default:
			return nil, fmt.Errorf("parser: line %d: content before any section header", i+1)
		}
	}
	return def, nil
}

func stripLineComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// parseProductionHead splits "lhs : r1 r2 ... rn" into its LHS name
// and whitespace-separated RHS symbol names. "%empty" denotes an
// epsilon production and must be the sole RHS token.
func parseProductionHead(line string) (lhs string, rhs []string, err error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", nil, fmt.Errorf("expected \"lhs : r1 r2 ...\", got %q", line)
	}
	lhs = textutil.Trim(line[:colon])
	if lhs == "" {
		return "", nil, fmt.Errorf("empty production LHS in %q", line)
	}
	fields := strings.Fields(line[colon+1:])
	if len(fields) == 1 && fields[0] == "%empty" {
		return lhs, nil, nil
	}
	for _, f := range fields {
		if f == "%empty" {
			return "", nil, fmt.Errorf("%%empty must be the sole right-hand side symbol in %q", line)
		}
	}
	return lhs, fields, nil
}

// readActionBody returns the text from lines[start] (which begins
// with '{') up to and including the line containing the balancing
// '}', and the index of that last line.
func readActionBody(lines []string, start int) (body string, lastLine int, err error) {
	depth := 0
	var b strings.Builder
	for i := start; i < len(lines); i++ {
		for _, c := range lines[i] {
			switch c {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		b.WriteString(lines[i])
		if depth == 0 {
			return b.String(), i, nil
		}
		b.WriteString("\n")
	}
	return "", 0, fmt.Errorf("unbalanced '{' in action body")
}

// BuildGrammar resolves a Definition into a *grammar.Grammar: it
// registers every declared terminal and non-terminal (the first
// declared non-terminal becomes the start symbol, per §6), then adds
// each production with its RHS resolved through the SymbolTable.
func BuildGrammar(def *Definition) (*grammar.Grammar, map[grammar.ProductionID]string, error) {
	if len(def.NonTerminals) == 0 {
		return nil, nil, fmt.Errorf("parser: grammar definition declares no non-terminals")
	}

	symbols := grammar.NewSymbolTable()
	for _, name := range def.Terminals {
		if _, err := symbols.RegisterTerminal(name); err != nil {
			return nil, nil, err
		}
	}
	for _, name := range def.NonTerminals {
		if _, err := symbols.RegisterNonTerminal(name); err != nil {
			return nil, nil, err
		}
	}

	b := grammar.NewBuilder(symbols)
	startSym, _ := symbols.ToSymbol(def.NonTerminals[0])
	if err := b.SetStart(startSym); err != nil {
		return nil, nil, err
	}

	actions := map[grammar.ProductionID]string{}
	for _, rp := range def.Productions {
		lhsSym, ok := symbols.ToSymbol(rp.lhs)
		if !ok || !lhsSym.IsNonTerminal() {
			return nil, nil, fmt.Errorf("%w: production LHS %q is not a declared non-terminal", grammar.ErrGrammarMalformed, rp.lhs)
		}
		rhs := make([]grammar.Symbol, len(rp.rhs))
		for i, name := range rp.rhs {
			sym, ok := symbols.ToSymbol(name)
			if !ok {
				return nil, nil, fmt.Errorf("parser: production %q references undeclared symbol %q", rp.lhs, name)
			}
			rhs[i] = sym
		}
		p, err := b.AddProduction(lhsSym, rhs, rp.action)
		if err != nil {
			return nil, nil, err
		}
		actions[p.ID] = rp.action
	}

	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return g, actions, nil
}
