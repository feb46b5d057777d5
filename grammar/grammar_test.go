package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderRejectsMissingStart(t *testing.T) {
	symbols := NewSymbolTable()
	n, _ := symbols.RegisterNonTerminal("N")
	b := NewBuilder(symbols)
	_, err := b.AddProduction(n, nil, "")
	require.NoError(t, err)

	_, err = b.Build()
	require.ErrorIs(t, err, ErrGrammarMalformed)
}

func TestBuilderRejectsMultipleStartProductions(t *testing.T) {
	symbols := NewSymbolTable()
	n, _ := symbols.RegisterNonTerminal("N")
	a, _ := symbols.RegisterTerminal("a")
	b := NewBuilder(symbols)
	require.NoError(t, b.SetStart(n))
	_, err := b.AddProduction(n, []Symbol{a}, "")
	require.NoError(t, err)
	_, err = b.AddProduction(n, nil, "")
	require.NoError(t, err)

	_, err = b.Build()
	require.ErrorIs(t, err, ErrGrammarMalformed)
}

func TestBuilderRejectsDuplicateProduction(t *testing.T) {
	symbols := NewSymbolTable()
	n, _ := symbols.RegisterNonTerminal("N")
	a, _ := symbols.RegisterTerminal("a")
	b := NewBuilder(symbols)
	require.NoError(t, b.SetStart(n))
	_, err := b.AddProduction(n, []Symbol{a}, "")
	require.NoError(t, err)

	_, err = b.AddProduction(n, []Symbol{a}, "")
	require.Error(t, err)
}

func TestGrammarProductionsForPreservesDeclarationOrder(t *testing.T) {
	symbols := NewSymbolTable()
	s, _ := symbols.RegisterNonTerminal("S")
	n, _ := symbols.RegisterNonTerminal("N")
	a, _ := symbols.RegisterTerminal("a")
	bTerm, _ := symbols.RegisterTerminal("b")
	builder := NewBuilder(symbols)
	require.NoError(t, builder.SetStart(s))
	_, err := builder.AddProduction(s, []Symbol{n}, "")
	require.NoError(t, err)
	_, err = builder.AddProduction(n, []Symbol{a}, "")
	require.NoError(t, err)
	_, err = builder.AddProduction(n, []Symbol{bTerm}, "")
	require.NoError(t, err)

	g, err := builder.Build()
	require.NoError(t, err)

	prods := g.ProductionsFor(n)
	require.Len(t, prods, 2)
	require.Equal(t, []Symbol{a}, prods[0].RHS)
	require.Equal(t, []Symbol{bTerm}, prods[1].RHS)
}

func TestRegisterTerminalRejectsNameAlreadyANonTerminal(t *testing.T) {
	symbols := NewSymbolTable()
	_, err := symbols.RegisterNonTerminal("N")
	require.NoError(t, err)

	_, err = symbols.RegisterTerminal("N")
	require.ErrorIs(t, err, ErrGrammarMalformed)
}

func TestRegisterNonTerminalRejectsNameAlreadyATerminal(t *testing.T) {
	symbols := NewSymbolTable()
	_, err := symbols.RegisterTerminal("a")
	require.NoError(t, err)

	_, err = symbols.RegisterNonTerminal("a")
	require.ErrorIs(t, err, ErrGrammarMalformed)
}

func TestSymbolTableResolvesReservedTerminals(t *testing.T) {
	symbols := NewSymbolTable()
	require.True(t, SymbolEmpty.IsEmpty())
	require.True(t, SymbolEnd.IsEnd())
	sym, ok := symbols.ToSymbol("$")
	require.True(t, ok)
	require.Equal(t, SymbolEnd, sym)
}
