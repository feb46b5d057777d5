package parser

import (
	"testing"
)

const arithGrammar = `
// a tiny wrapped-start arithmetic grammar
TERMINALS
  id
  plus
NONTERMINALS
  start
  E
  E'
  T
PRODUCTIONS
  start : E
  { return args[0] }
  E : T E'
  {
    // multi-line action bodies must balance nested braces
    if len(args) > 0 { return args[0] }
    return nil
  }
  E' : plus T E'
  { return nil }
  E' : %empty
  { return nil }
  T : id
  { return args[0] }
`

func TestParseDefinitionParsesAllSections(t *testing.T) {
	def, err := ParseDefinition(arithGrammar)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if len(def.Terminals) != 2 || len(def.NonTerminals) != 4 {
		t.Fatalf("expected 2 terminals and 4 non-terminals, got %+v", def)
	}
	if len(def.Productions) != 5 {
		t.Fatalf("expected 5 productions, got %d", len(def.Productions))
	}
}

func TestParseDefinitionHandlesEmptyProduction(t *testing.T) {
	def, err := ParseDefinition(arithGrammar)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	found := false
	for _, p := range def.Productions {
		if p.lhs == "E'" && len(p.rhs) == 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an empty production for E'")
	}
}

func TestParseDefinitionBalancesNestedBraces(t *testing.T) {
	def, err := ParseDefinition(arithGrammar)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	for _, p := range def.Productions {
		if p.lhs == "E" && len(p.rhs) == 2 {
			if p.action == "" {
				t.Fatal("expected a non-empty multi-line action body")
			}
		}
	}
}

func TestBuildGrammarProducesAWorkingLL1Table(t *testing.T) {
	def, err := ParseDefinition(arithGrammar)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	g, actions, err := BuildGrammar(def)
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	if len(actions) != 5 {
		t.Fatalf("expected 5 registered action bodies, got %d", len(actions))
	}
	startText, _ := g.Symbols().ToText(g.Start)
	if startText != "start" {
		t.Fatalf("expected the first declared non-terminal to be the start symbol, got %q", startText)
	}
}

func TestBuildGrammarRejectsNameDeclaredAsBothTerminalAndNonTerminal(t *testing.T) {
	dup := `
TERMINALS
  id
NONTERMINALS
  start
  id
PRODUCTIONS
  start : id
  { return nil }
`
	def, err := ParseDefinition(dup)
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if _, _, err := BuildGrammar(def); err == nil {
		t.Fatal("expected an error when a name is declared as both a terminal and a non-terminal")
	}
}

func TestParseDefinitionRejectsEmptyMixedWithOtherSymbols(t *testing.T) {
	bad := `
TERMINALS
  id
NONTERMINALS
  E
PRODUCTIONS
  E : id %empty
  { return nil }
`
	if _, err := ParseDefinition(bad); err == nil {
		t.Fatal("expected an error when empty is not the sole right-hand side symbol")
	}
}
