// Package scanner runs many compiled DFAs in parallel over an input
// buffer, picking the longest match and breaking ties by declaration
// order, and tracks byte offsets back to line/column locations.
//
// Grounded on original_source/src/lexer/lexer.cpp's Lexer::GetLexemeAt,
// which runs one DFA per declared token, drops DFAs as they error,
// remembers the furthest position at which any DFA was still
// accepting, and on a tie prefers whichever token was declared first.
// Location tracking (row/col bookkeeping as bytes are consumed) is
// adapted from _examples/nihei9-vartan/driver/lexer/lexer.go's
// Lexer.read, generalized from UTF-8 code-point counting to this
// system's byte-only alphabet.
package scanner

import (
	"fmt"
	"sort"

	"github.com/coolcc/coolcc/dfa"
)

// TokenSpec names one token and the DFA compiled from its regex.
// Declaration order in Spec.Tokens (and so in a Scanner's token
// list) is the longest-match tie-break precedence.
type TokenSpec struct {
	Name     string
	Automaton *dfa.Automaton
}

// Loc is the location of a lexeme within one source file.
type Loc struct {
	File       string
	ByteOffset int
	Line       int // 1-based
	Column     int // 1-based, counted in bytes
	LineText   string
}

func (l Loc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Lexeme is one scanned unit: its text, the name of the token that
// matched it, and where it was found. Next returns (nil, nil) at end
// of input; a Lexeme with an empty Token here instead means
// LexerStuck (§7): no DFA accepted anything starting at Loc.
type Lexeme struct {
	Text  string
	Token string
	Loc   Loc
}

// Scanner holds the compiled token table and the mutable cursor over
// one input buffer.
type Scanner struct {
	file    string
	tokens  []TokenSpec
	buf     []byte
	cursor  int
	lineOf  []int // lineOf[i] = byte offset where line i+1 (1-based) starts
}

// New compiles a Scanner for one input buffer against a declared list
// of token specs (priority = slice order).
func New(file string, buf []byte, tokens []TokenSpec) *Scanner {
	return &Scanner{
		file:   file,
		tokens: tokens,
		buf:    buf,
		lineOf: lineStarts(buf),
	}
}

func lineStarts(buf []byte) []int {
	starts := []int{0}
	for i, b := range buf {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// locate maps a byte offset to its (line, column, line text) via an
// upper-bound search over the precomputed line-start offsets.
func (s *Scanner) locate(offset int) Loc {
	line := sort.Search(len(s.lineOf), func(i int) bool { return s.lineOf[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	start := s.lineOf[line]
	end := len(s.buf)
	if line+1 < len(s.lineOf) {
		end = s.lineOf[line+1] - 1
		if end < start {
			end = start
		}
	}
	return Loc{
		File:       s.file,
		ByteOffset: offset,
		Line:       line + 1,
		Column:     offset - start + 1,
		LineText:   string(s.buf[start:minInt(end, len(s.buf))]),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

const stuckToken = ""

// Next produces the next lexeme from the current cursor, or reports
// EOF by returning (nil, nil). A "stuck" position (§7 LexerStuck)
// comes back as a Lexeme with an empty Token and empty Text; the
// cursor has already been advanced past it by one byte so the caller
// can keep calling Next to collect further diagnostics.
func (s *Scanner) Next() (*Lexeme, error) {
	if s.cursor >= len(s.buf) {
		return nil, nil
	}

	start := s.cursor
	loc := s.locate(start)

	live := make([]*dfa.Runner, len(s.tokens))
	for i, ts := range s.tokens {
		live[i] = dfa.NewRunner(ts.Automaton)
	}

	lastAcceptEnd := -1
	var lastAcceptNames map[string]bool

	probe := start
	anyLive := true
	for probe < len(s.buf) && anyLive {
		b := s.buf[probe]
		anyLive = false
		accepting := map[string]bool{}
		for i, r := range live {
			if r == nil {
				continue
			}
			if r.Errored() {
				live[i] = nil
				continue
			}
			r.Step(b)
			if r.Errored() {
				live[i] = nil
				continue
			}
			anyLive = true
			if _, ok := r.Accepting(); ok {
				accepting[s.tokens[i].Name] = true
			}
		}
		if len(accepting) > 0 {
			lastAcceptEnd = probe
			lastAcceptNames = accepting
		}
		probe++
	}

	if lastAcceptEnd == -1 {
		s.cursor = start + 1
		return &Lexeme{Text: "", Token: stuckToken, Loc: loc}, nil
	}

	winner := ""
	for _, ts := range s.tokens {
		if lastAcceptNames[ts.Name] {
			winner = ts.Name
			break
		}
	}
	text := string(s.buf[start : lastAcceptEnd+1])
	s.cursor = lastAcceptEnd + 1
	return &Lexeme{Text: text, Token: winner, Loc: loc}, nil
}
