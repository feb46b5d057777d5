package scanner

import (
	"fmt"

	"github.com/coolcc/coolcc/dfa"
	"github.com/coolcc/coolcc/regex"
)

// compileRegex parses and builds a DFA for one token's regex body,
// mirroring dfa/builder_test.go's mustCompile: parse, append the
// sentinel, number the leaves, and build the automaton over the
// sentinel's position.
func compileRegex(pattern string) (*dfa.Automaton, error) {
	root, err := regex.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanner: compiling regex %q: %w", pattern, err)
	}
	withSentinel := regex.AppendSentinel(root)
	n := regex.Number(withSentinel)
	return dfa.Build(withSentinel, n), nil
}
