// Package dfa builds a deterministic finite automaton directly from a
// regex syntax tree's followpos sets (no NFA simulation; no subset
// construction over NFA states) and runs it over byte input.
//
// Grounded on _examples/nihei9-vartan/grammar/lexical/dfa/dfa.go (the
// followpos-table + hash-keyed subset-construction shape), adapted so
// that states are opaque ints assigned in construction order (state 0
// is always the initial state) rather than vartan's sorted-hash IDs,
// per this module's DFA state-identity requirement.
package dfa

import (
	"strconv"
	"strings"

	"github.com/coolcc/coolcc/charclass"
	"github.com/coolcc/coolcc/regex"
)

// posSetKey returns a stable string key for a set of leaf positions, used
// to deduplicate DFA states during subset construction.
func posSetKey(ps regex.PosSet) string {
	ordered := ps.Slice()
	strs := make([]string, len(ordered))
	for i, p := range ordered {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ",")
}

// followTable maps a leaf position to the positions that can
// immediately follow it in a matched string.
type followTable map[int]regex.PosSet

// buildFollowPos computes followpos(p) for every leaf position in root,
// by walking every Cat and Star node exactly once.
func buildFollowPos(root regex.Node) followTable {
	follow := followTable{}
	var ensure func(p int) regex.PosSet
	ensure = func(p int) regex.PosSet {
		s, ok := follow[p]
		if !ok {
			s = regex.PosSet{}
			follow[p] = s
		}
		return s
	}

	var visit func(n regex.Node)
	visit = func(n regex.Node) {
		if n == nil {
			return
		}
		left, right := n.Children()
		visit(left)
		visit(right)

		switch n.String() {
		case "Cat":
			for _, p := range left.LastPos().Slice() {
				ensure(p).Merge(right.FirstPos())
			}
		case "Star":
			for _, p := range n.LastPos().Slice() {
				ensure(p).Merge(n.FirstPos())
			}
		}
	}
	visit(root)
	return follow
}

// State is an opaque DFA state identifier. States are assigned in
// construction order during subset construction: state 0 is always
// the initial state.
type State int

// Invalid is returned by Step for a byte with no outgoing transition.
const Invalid State = -1

// Automaton is a deterministic finite automaton over the byte
// alphabet, with an accepting leaf position attached to each
// accepting state. Build records the sentinel leaf's position for
// every accepting state, since the sentinel is the only accepting
// position.
type Automaton struct {
	NumStates    int
	Initial      State
	Transitions  []map[byte]State // Transitions[s][b] = next state
	AcceptingPos map[State]int    // state -> sentinel leaf position, if accepting
}

// Accepting reports whether s is an accepting state and, if so, the
// leaf position that made it so.
func (a *Automaton) Accepting(s State) (int, bool) {
	p, ok := a.AcceptingPos[s]
	return p, ok
}

// Step returns the state reached from s on input byte b, or Invalid
// if there is no such transition.
func (a *Automaton) Step(s State, b byte) State {
	next, ok := a.Transitions[s][b]
	if !ok {
		return Invalid
	}
	return next
}

// Build performs direct subset construction over root's followpos
// sets. root must already have had regex.AppendSentinel and
// regex.Number applied; sentinelPos is the position of the appended
// sentinel leaf (the unique accepting position).
func Build(root regex.Node, sentinelPos int) *Automaton {
	follow := buildFollowPos(root)

	type pendingState struct {
		key string
		set regex.PosSet
	}

	initialSet := root.FirstPos()
	initialKey := posSetKey(initialSet)

	keyToID := map[string]State{initialKey: 0}
	idToSet := map[State]regex.PosSet{0: initialSet}
	var order []State
	order = append(order, 0)

	worklist := []pendingState{{key: initialKey, set: initialSet}}
	nextID := State(1)

	transitions := []map[byte]State{{}}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		curID := keyToID[cur.key]
		if transitions[curID] == nil {
			transitions[curID] = map[byte]State{}
		}

		var perByte [256]regex.PosSet
		for _, pos := range cur.set.Slice() {
			if pos == sentinelPos {
				continue
			}
			symbols := leafSymbols(root, pos)
			for _, b := range symbols.Bytes() {
				if perByte[b] == nil {
					perByte[b] = regex.PosSet{}
				}
				perByte[b].Merge(follow[pos])
			}
		}

		for b := 0; b < 256; b++ {
			target := perByte[b]
			if target == nil || len(target) == 0 {
				continue
			}
			tKey := posSetKey(target)
			tID, ok := keyToID[tKey]
			if !ok {
				tID = nextID
				nextID++
				keyToID[tKey] = tID
				idToSet[tID] = target
				order = append(order, tID)
				transitions = append(transitions, map[byte]State{})
				worklist = append(worklist, pendingState{key: tKey, set: target})
			}
			transitions[curID][byte(b)] = tID
		}
	}

	accepting := map[State]int{}
	for _, id := range order {
		if _, ok := idToSet[id][sentinelPos]; ok {
			accepting[id] = sentinelPos
		}
	}

	return &Automaton{
		NumStates:    len(order),
		Initial:      0,
		Transitions:  transitions,
		AcceptingPos: accepting,
	}
}

// leafSymbols finds the leaf at position pos within root and returns
// its byte class. It is O(n) per call; Build calls it once per
// (state, position) pair during construction, which is acceptable for
// the lexeme-sized regexes this system compiles.
func leafSymbols(root regex.Node, pos int) charclass.Set {
	var found charclass.Set
	var visit func(n regex.Node)
	visit = func(n regex.Node) {
		if n == nil {
			return
		}
		l, r := n.Children()
		if l == nil && r == nil {
			symbols, p := n.Leaf()
			if p == pos {
				found = symbols
			}
			return
		}
		visit(l)
		visit(r)
	}
	visit(root)
	return found
}
