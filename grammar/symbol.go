// Package grammar is the data model for a context-free grammar: symbols,
// productions, and the grammar that ties them to a start symbol.
//
// Grounded on _examples/nihei9-vartan/grammar/symbol.go (the packed
// uint16 symbol encoding and symbol-table reader/writer split),
// adapted for this system's two reserved terminals (EMPTY and END)
// instead of vartan's start/EOF pair, per the grammar model this
// spec's LL(1) pipeline needs.
package grammar

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

// SymbolNum is a symbol's 1-based ordinal within its kind (terminal or
// non-terminal), in declaration order.
type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol is a compact, comparable handle for a terminal or
// non-terminal. The top bit tags the kind; the next bit tags the two
// reserved terminals (EMPTY and END); the rest is the ordinal.
type Symbol uint16

const (
	maskKind   = uint16(0x8000)
	maskNonTerminal = uint16(0x0000)
	maskTerminal    = uint16(0x8000)

	maskReserved = uint16(0x4000)

	maskNum = uint16(0x3fff)

	numEmpty = uint16(0x0001)
	numEnd   = uint16(0x0002)

	// SymbolNone is the zero Symbol: no symbol is ever assigned this
	// value by the table below.
	SymbolNone = Symbol(0)

	// SymbolEmpty denotes the empty string (epsilon) in a production's
	// RHS and in FIRST/FOLLOW sets. Its name is "ε".
	SymbolEmpty = Symbol(maskTerminal | maskReserved | numEmpty)

	// SymbolEnd denotes the end-of-input marker appended to every
	// grammar's FOLLOW(start) and fed to the parser driver once the
	// token stream is exhausted. Its name is "$".
	SymbolEnd = Symbol(maskTerminal | maskReserved | numEnd)

	symbolNameEmpty = "ε"
	symbolNameEnd   = "$"

	terminalNumMin    = SymbolNum(3) // 1 and 2 are EMPTY and END.
	nonTerminalNumMin = SymbolNum(1)
	symbolNumMax      = SymbolNum(0x3fff)
)

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNone, fmt.Errorf("%w: symbol number %v exceeds the limit %v", ErrGrammarMalformed, num, symbolNumMax)
	}
	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	return Symbol(kindMask | uint16(num)), nil
}

func (s Symbol) describe() (kind symbolKind, reserved bool, num SymbolNum) {
	kind = symbolKindNonTerminal
	if uint16(s)&maskKind > 0 {
		kind = symbolKindTerminal
	}
	reserved = uint16(s)&maskReserved > 0
	num = SymbolNum(uint16(s) & maskNum)
	return
}

// IsNil reports whether s is the zero Symbol.
func (s Symbol) IsNil() bool {
	return s == SymbolNone
}

// IsTerminal reports whether s is a terminal symbol, including EMPTY
// and END.
func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindTerminal
}

// IsNonTerminal reports whether s is a non-terminal symbol.
func (s Symbol) IsNonTerminal() bool {
	return !s.IsNil() && !s.IsTerminal()
}

// IsEmpty reports whether s is the reserved EMPTY terminal.
func (s Symbol) IsEmpty() bool {
	return s == SymbolEmpty
}

// IsEnd reports whether s is the reserved END terminal.
func (s Symbol) IsEnd() bool {
	return s == SymbolEnd
}

func (s Symbol) String() string {
	kind, reserved, num := s.describe()
	switch {
	case s.IsNil():
		return "<nil>"
	case reserved && s.IsEnd():
		return "t$"
	case reserved && s.IsEmpty():
		return "tε"
	case kind == symbolKindTerminal:
		return fmt.Sprintf("t%v", num)
	default:
		return fmt.Sprintf("n%v", num)
	}
}

// SymbolTable assigns stable Symbol handles to terminal/non-terminal
// names and resolves between the two, in registration order.
type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   SymbolNum
	termNum      SymbolNum
	start        Symbol
}

// NewSymbolTable returns a table pre-seeded with EMPTY and END.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			symbolNameEmpty: SymbolEmpty,
			symbolNameEnd:   SymbolEnd,
		},
		sym2Text: map[Symbol]string{
			SymbolEmpty: symbolNameEmpty,
			SymbolEnd:   symbolNameEnd,
		},
		termTexts:  []string{"", symbolNameEmpty, symbolNameEnd},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

// RegisterTerminal assigns (or looks up) a Symbol for a terminal name.
// Terminal and non-terminal names are disjoint; registering a name
// that is already a non-terminal is a GrammarMalformed error.
func (t *SymbolTable) RegisterTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNone, fmt.Errorf("%w: %q is already registered as a non-terminal", ErrGrammarMalformed, text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, t.termNum)
	if err != nil {
		return SymbolNone, err
	}
	t.termNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.termTexts = append(t.termTexts, text)
	return sym, nil
}

// RegisterNonTerminal assigns (or looks up) a Symbol for a
// non-terminal name. Terminal and non-terminal names are disjoint;
// registering a name that is already a terminal is a GrammarMalformed
// error.
func (t *SymbolTable) RegisterNonTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNone, fmt.Errorf("%w: %q is already registered as a terminal", ErrGrammarMalformed, text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, t.nonTermNum)
	if err != nil {
		return SymbolNone, err
	}
	t.nonTermNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.nonTermTexts = append(t.nonTermTexts, text)
	return sym, nil
}

// SetStart records sym (which must already be registered as a
// non-terminal) as the grammar's start symbol.
func (t *SymbolTable) SetStart(sym Symbol) error {
	if !sym.IsNonTerminal() {
		return fmt.Errorf("%w: start symbol must be a non-terminal", ErrGrammarMalformed)
	}
	t.start = sym
	return nil
}

// Start returns the recorded start symbol, or SymbolNone if none was
// set.
func (t *SymbolTable) Start() Symbol {
	return t.start
}

// ToSymbol resolves a registered name to its Symbol.
func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

// ToText resolves a Symbol back to its registered name.
func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	text, ok := t.sym2Text[sym]
	return text, ok
}

// Terminals returns every registered terminal in declaration order,
// followed by EMPTY and END.
func (t *SymbolTable) Terminals() []Symbol {
	syms := make([]Symbol, 0, t.termNum.Int())
	for sym := range t.sym2Text {
		if sym.IsTerminal() {
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// NonTerminals returns every registered non-terminal, ordered by
// declaration.
func (t *SymbolTable) NonTerminals() []Symbol {
	syms := make([]Symbol, 0, t.nonTermNum.Int())
	for sym := range t.sym2Text {
		if sym.IsNonTerminal() {
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
