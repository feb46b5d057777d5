package scanner

import (
	"fmt"
	"strings"

	"github.com/coolcc/coolcc/internal/textutil"
)

// Spec is a compiled lexer-definition file: the ordered token table
// (order = longest-match tie-break precedence) plus the KEYWORDS and
// SYMBOLS name sets, which are pure metadata for callers formatting
// output (§6) and never affect scanning.
type Spec struct {
	Tokens   []TokenSpec
	Keywords map[string]bool
	Symbols  map[string]bool
}

type defEntry struct {
	name    string
	pattern string
}

type rawDefinition struct {
	entries  []defEntry
	keywords []string
	symbols  []string
}

const (
	sectionNone       = ""
	sectionDefinition = "DEFINITION"
	sectionKeywords   = "KEYWORDS"
	sectionSymbols    = "SYMBOLS"
)

// parseDefinitionText parses a lexer-definition file's text (§6) into
// its three sections without compiling any regex, so definition.go's
// line-oriented parsing and compile.go's regex compilation stay
// separate concerns.
func parseDefinitionText(text string) (*rawDefinition, error) {
	raw := &rawDefinition{}
	section := sectionNone

	for lineNo, line := range textutil.Split(text, '\n') {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = textutil.Trim(line)
		if line == "" {
			continue
		}

		switch line {
		case sectionDefinition, sectionKeywords, sectionSymbols:
			section = line
			continue
		}

		switch section {
		case sectionDefinition:
			name, pattern, err := parseDefinitionLine(line)
			if err != nil {
				return nil, fmt.Errorf("scanner: line %d: %w", lineNo+1, err)
			}
			raw.entries = append(raw.entries, defEntry{name: name, pattern: pattern})
		case sectionKeywords:
			raw.keywords = append(raw.keywords, line)
		case sectionSymbols:
			raw.symbols = append(raw.symbols, line)
		default:
			return nil, fmt.Errorf("scanner: line %d: content before any section header", lineNo+1)
		}
	}
	return raw, nil
}

// parseDefinitionLine splits "TOKEN_NAME : { regex }" into its name
// and regex body. The regex body is delimited by the first `{` and
// the first `}` that follows it: not nesting-aware, matching
// original_source/src/lexer/lexer.cpp's brace handling. Whitespace
// surrounding the body inside the braces is trimmed.
func parseDefinitionLine(line string) (name, pattern string, err error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", fmt.Errorf("expected \"NAME : { regex }\", got %q", line)
	}
	name = textutil.Trim(line[:colon])
	if name == "" {
		return "", "", fmt.Errorf("empty token name in %q", line)
	}

	rest := line[colon+1:]
	open := strings.Index(rest, "{")
	if open < 0 {
		return "", "", fmt.Errorf("missing '{' in %q", line)
	}
	rest = rest[open+1:]
	closeIdx := strings.Index(rest, "}")
	if closeIdx < 0 {
		return "", "", fmt.Errorf("missing '}' in %q", line)
	}
	return name, textutil.Trim(rest[:closeIdx]), nil
}

// Compile parses a lexer-definition file's text and compiles every
// DEFINITION entry's regex into a DFA, in declaration order.
func Compile(text string) (*Spec, error) {
	raw, err := parseDefinitionText(text)
	if err != nil {
		return nil, err
	}
	if len(raw.entries) == 0 {
		return nil, fmt.Errorf("scanner: definition has no DEFINITION entries")
	}

	spec := &Spec{
		Keywords: map[string]bool{},
		Symbols:  map[string]bool{},
	}
	for _, e := range raw.entries {
		automaton, err := compileRegex(e.pattern)
		if err != nil {
			return nil, fmt.Errorf("scanner: token %s: %w", e.name, err)
		}
		spec.Tokens = append(spec.Tokens, TokenSpec{Name: e.name, Automaton: automaton})
	}
	for _, k := range raw.keywords {
		spec.Keywords[k] = true
	}
	for _, s := range raw.symbols {
		spec.Symbols[s] = true
	}
	return spec, nil
}

// NewScanner returns a Scanner over buf using this Spec's compiled
// token table.
func (s *Spec) NewScanner(file string, buf []byte) *Scanner {
	return New(file, buf, s.Tokens)
}
