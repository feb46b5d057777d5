// Package coolerr is the diagnostic error type: the CLI wraps the
// plain errors the other packages return into a *SpecError tagged
// with one of the six Kinds in spec.md §7, rendered as a one-line
// message plus a quoted source line with a caret under the offending
// column.
//
// Grounded on _examples/nihei9-vartan/error's single-error-type shape
// and original_source/src/error_handler/error_handler.cpp's
// ConsolePrint, which builds the same "prefix file:line - line_text"
// plus caret-on-the-next-line rendering.
package coolerr

import (
	"fmt"
	"strings"
)

// Kind enumerates the six error categories the core reports.
type Kind int

const (
	// InvalidRegex: malformed regex (unmatched paren, dangling *, bad
	// character class, unsupported named range).
	InvalidRegex Kind = iota
	// LexerStuck: no DFA accepted anything at the current cursor.
	LexerStuck
	// GrammarMalformed: a structural defect in a grammar under
	// construction (terminal on a production's LHS, unknown RHS symbol,
	// a start symbol with zero or more than one production, a name
	// reused across the terminal/non-terminal sets).
	GrammarMalformed
	// GrammarAmbiguous: an LL(1) table cell holds more than one
	// production.
	GrammarAmbiguous
	// ParserMismatch: a runtime parsing failure (no table entry for the
	// current token, or a stack terminal that doesn't match it).
	ParserMismatch
	// IoError: failure reading a definition or source file.
	IoError
)

func (k Kind) String() string {
	switch k {
	case InvalidRegex:
		return "InvalidRegex"
	case LexerStuck:
		return "LexerStuck"
	case GrammarMalformed:
		return "GrammarMalformed"
	case GrammarAmbiguous:
		return "GrammarAmbiguous"
	case ParserMismatch:
		return "ParserMismatch"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// SpecError is the core's error value: a Kind, the underlying cause,
// and (when known) the source location the cause happened at.
type SpecError struct {
	Kind  Kind
	Cause error
	File  string
	Row   int // 1-based; 0 means unknown
	Col   int // 1-based; 0 means unknown
	Line  string
}

func (e *SpecError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v error", e.Kind)
	if e.File != "" {
		fmt.Fprintf(&b, " (%s", e.File)
		if e.Row > 0 {
			fmt.Fprintf(&b, ":%d", e.Row)
			if e.Col > 0 {
				fmt.Fprintf(&b, ":%d", e.Col)
			}
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": %v", e.Cause)

	if e.Line != "" {
		fmt.Fprintf(&b, "\n    %s", e.Line)
		if e.Col > 0 {
			fmt.Fprintf(&b, "\n    %s^", strings.Repeat(" ", e.Col-1))
		}
	}
	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// New builds a SpecError with no location attached, for construction
// errors that aren't tied to one input byte.
func New(kind Kind, cause error) *SpecError {
	return &SpecError{Kind: kind, Cause: cause}
}

// At attaches a source location to a SpecError, returning a new value
// (the original is left untouched).
func (e *SpecError) At(file string, row, col int, line string) *SpecError {
	cp := *e
	cp.File = file
	cp.Row = row
	cp.Col = col
	cp.Line = line
	return &cp
}
