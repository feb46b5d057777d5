package regex

import (
	"fmt"

	"github.com/coolcc/coolcc/charclass"
)

// ErrInvalidRegex is the sentinel wrapped by every parse failure Parse
// returns, so callers can test with errors.Is regardless of the
// specific malformed-input detail.
var ErrInvalidRegex = fmt.Errorf("invalid regex")

// Parse builds a syntax tree for pattern. A star always applies to the
// single atom immediately to its left (a literal, an escape, a bracket
// class, or a fully parenthesized group); '|' has the lowest
// precedence and splits the remainder of the pattern off as its right
// operand; concatenation is implicit. The tree returned is not yet
// numbered and carries no sentinel; callers that need a runnable DFA
// call AppendSentinel then Number.
//
// Grounded on original_source/src/lexer/dfa.cpp's MakeRegexTree: a
// single left-to-right scan that builds a growing Cat spine, splices
// in a parenthesized subtree recursively, and defers to a recursive
// call for everything after a '|'.
func Parse(pattern string) (Node, error) {
	root, rest, err := parseAlt(pattern)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidRegex, rest)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidRegex)
	}
	return root, nil
}

// parseAlt parses a full alternation: a concatenation, optionally
// followed by '|' and another full alternation (right-associated, but
// since Or is commutative/associative in language terms the direction
// does not change the matched language).
func parseAlt(s string) (Node, string, error) {
	left, rest, err := parseCat(s)
	if err != nil {
		return nil, "", err
	}
	if len(rest) == 0 || rest[0] != '|' {
		return left, rest, nil
	}
	if left == nil {
		return nil, "", fmt.Errorf("%w: empty left operand of '|'", ErrInvalidRegex)
	}
	right, rest2, err := parseAlt(rest[1:])
	if err != nil {
		return nil, "", err
	}
	if right == nil {
		return nil, "", fmt.Errorf("%w: empty right operand of '|'", ErrInvalidRegex)
	}
	return newOr(left, right), rest2, nil
}

// parseCat parses a concatenation of atoms (each possibly starred),
// stopping at '|', an unmatched ')', or end of input.
func parseCat(s string) (Node, string, error) {
	var tree Node
	for len(s) > 0 {
		c := s[0]
		if c == '|' || c == ')' {
			break
		}

		atom, rest, err := parseAtom(s)
		if err != nil {
			return nil, "", err
		}

		for len(rest) > 0 && rest[0] == '*' {
			atom = newStar(atom)
			rest = rest[1:]
		}

		if tree == nil {
			tree = atom
		} else {
			tree = newCat(tree, atom)
		}
		s = rest
	}
	return tree, s, nil
}

// parseAtom parses exactly one atom: an escape, a bracket class, a
// parenthesized group, a wildcard '.', or a single literal byte. It
// returns the atom and the unconsumed remainder.
func parseAtom(s string) (Node, string, error) {
	if len(s) == 0 {
		return nil, "", fmt.Errorf("%w: unexpected end of pattern", ErrInvalidRegex)
	}

	c := s[0]
	switch c {
	case '\\':
		if len(s) < 2 {
			return nil, "", fmt.Errorf("%w: dangling escape", ErrInvalidRegex)
		}
		return newLeaf(charclass.Single(s[1])), s[2:], nil

	case '(':
		body, rest, err := splitMatched(s, '(', ')')
		if err != nil {
			return nil, "", err
		}
		inner, err := Parse(body)
		if err != nil {
			return nil, "", err
		}
		return inner, rest, nil

	case '[':
		body, rest, err := splitMatched(s, '[', ']')
		if err != nil {
			return nil, "", err
		}
		set, err := charclass.Bracket(body)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidRegex, err)
		}
		return newLeaf(set), rest, nil

	case '.':
		return newLeaf(charclass.All()), s[1:], nil

	case '*', '|', ')', ']':
		return nil, "", fmt.Errorf("%w: unexpected %q", ErrInvalidRegex, c)

	default:
		return newLeaf(charclass.Single(c)), s[1:], nil
	}
}

// splitMatched expects s to begin with open and returns the text
// strictly between the matching close (honoring nested open/close
// pairs) and the remainder of s after that close, both exclusive of
// the delimiters.
func splitMatched(s string, open, close byte) (body string, rest string, err error) {
	if len(s) == 0 || s[0] != open {
		return "", "", fmt.Errorf("%w: expected %q", ErrInvalidRegex, open)
	}
	depth := 1
	i := 1
	for i < len(s) && depth > 0 {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
		}
		i++
	}
	if depth != 0 {
		return "", "", fmt.Errorf("%w: unmatched %q", ErrInvalidRegex, open)
	}
	return s[1 : i-1], s[i:], nil
}
