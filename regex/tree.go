// Package regex parses an extended regular expression into a syntax
// tree and computes the nullable/firstpos/lastpos attributes the DFA
// builder needs.
//
// Grounded on _examples/nihei9-vartan/grammar/lexical/dfa/tree.go (the
// variant-tree-with-memoized-attributes shape) and
// original_source/src/lexer/dfa.cpp's MakeRegexTree (the recursive,
// paren-matching parse algorithm).
package regex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coolcc/coolcc/charclass"
)

// PosSet is a set of regex leaf positions (1-based).
type PosSet map[int]struct{}

func newPosSet(ps ...int) PosSet {
	s := PosSet{}
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s PosSet) add(p int) {
	s[p] = struct{}{}
}

func (s PosSet) merge(t PosSet) {
	for p := range t {
		s[p] = struct{}{}
	}
}

// Merge adds every position of t into s. Exported so packages outside
// regex (notably dfa, which builds new position sets while walking
// followpos) can grow a PosSet without reaching into its internals.
func (s PosSet) Merge(t PosSet) {
	s.merge(t)
}

// Add inserts p into s. Exported for the same reason as Merge.
func (s PosSet) Add(p int) {
	s.add(p)
}

// NewPosSet returns a PosSet containing ps.
func NewPosSet(ps ...int) PosSet {
	return newPosSet(ps...)
}

// Slice returns the positions in ascending order.
func (s PosSet) Slice() []int {
	ps := make([]int, 0, len(s))
	for p := range s {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps
}

func (s PosSet) String() string {
	ps := s.Slice()
	strs := make([]string, len(ps))
	for i, p := range ps {
		strs[i] = fmt.Sprintf("%d", p)
	}
	return "{" + strings.Join(strs, ",") + "}"
}

// Node is a regex syntax tree node: Or, Cat, Star, or Leaf.
type Node interface {
	fmt.Stringer

	// Children returns the node's operands. A Leaf returns nil, nil;
	// Star returns its single child as left and nil as right.
	Children() (Node, Node)

	// Nullable reports whether the node's language contains the empty
	// string.
	Nullable() bool

	// FirstPos returns the set of leaf positions that can begin a
	// string the node matches.
	FirstPos() PosSet

	// LastPos returns the set of leaf positions that can end a string
	// the node matches.
	LastPos() PosSet

	// Leaf returns the leaf's byte class and 1-based position. It
	// panics if the node is not a Leaf; callers should type-switch or
	// check Children() == (nil, nil) first.
	Leaf() (symbols charclass.Set, position int)
}

type orNode struct {
	left, right          Node
	firstMemo, lastMemo  PosSet
}

func newOr(l, r Node) *orNode { return &orNode{left: l, right: r} }

func (n *orNode) String() string           { return "Or" }
func (n *orNode) Children() (Node, Node)    { return n.left, n.right }
func (n *orNode) Nullable() bool            { return n.left.Nullable() || n.right.Nullable() }
func (n *orNode) Leaf() (charclass.Set, int) { panic("regex: Leaf called on an Or node") }

func (n *orNode) FirstPos() PosSet {
	if n.firstMemo == nil {
		n.firstMemo = newPosSet()
		n.firstMemo.merge(n.left.FirstPos())
		n.firstMemo.merge(n.right.FirstPos())
	}
	return n.firstMemo
}

func (n *orNode) LastPos() PosSet {
	if n.lastMemo == nil {
		n.lastMemo = newPosSet()
		n.lastMemo.merge(n.left.LastPos())
		n.lastMemo.merge(n.right.LastPos())
	}
	return n.lastMemo
}

type catNode struct {
	left, right         Node
	firstMemo, lastMemo PosSet
}

func newCat(l, r Node) *catNode { return &catNode{left: l, right: r} }

func (n *catNode) String() string           { return "Cat" }
func (n *catNode) Children() (Node, Node)    { return n.left, n.right }
func (n *catNode) Nullable() bool            { return n.left.Nullable() && n.right.Nullable() }
func (n *catNode) Leaf() (charclass.Set, int) { panic("regex: Leaf called on a Cat node") }

func (n *catNode) FirstPos() PosSet {
	if n.firstMemo == nil {
		n.firstMemo = newPosSet()
		n.firstMemo.merge(n.left.FirstPos())
		if n.left.Nullable() {
			n.firstMemo.merge(n.right.FirstPos())
		}
	}
	return n.firstMemo
}

func (n *catNode) LastPos() PosSet {
	if n.lastMemo == nil {
		n.lastMemo = newPosSet()
		n.lastMemo.merge(n.right.LastPos())
		if n.right.Nullable() {
			n.lastMemo.merge(n.left.LastPos())
		}
	}
	return n.lastMemo
}

type starNode struct {
	child               Node
	firstMemo, lastMemo PosSet
}

func newStar(c Node) *starNode { return &starNode{child: c} }

func (n *starNode) String() string           { return "Star" }
func (n *starNode) Children() (Node, Node)    { return n.child, nil }
func (n *starNode) Nullable() bool            { return true }
func (n *starNode) Leaf() (charclass.Set, int) { panic("regex: Leaf called on a Star node") }

func (n *starNode) FirstPos() PosSet {
	if n.firstMemo == nil {
		n.firstMemo = newPosSet()
		n.firstMemo.merge(n.child.FirstPos())
	}
	return n.firstMemo
}

func (n *starNode) LastPos() PosSet {
	if n.lastMemo == nil {
		n.lastMemo = newPosSet()
		n.lastMemo.merge(n.child.LastPos())
	}
	return n.lastMemo
}

// leafNode is a symbol leaf; its position is assigned by Number after
// parsing, numbering leaves left to right starting at 1.
type leafNode struct {
	symbols charclass.Set
	pos     int
}

func newLeaf(symbols charclass.Set) *leafNode { return &leafNode{symbols: symbols} }

func (n *leafNode) String() string        { return fmt.Sprintf("Leaf(pos=%d)", n.pos) }
func (n *leafNode) Children() (Node, Node) { return nil, nil }
func (n *leafNode) Nullable() bool         { return false }
func (n *leafNode) FirstPos() PosSet       { return newPosSet(n.pos) }
func (n *leafNode) LastPos() PosSet        { return newPosSet(n.pos) }
func (n *leafNode) Leaf() (charclass.Set, int) { return n.symbols, n.pos }

// Number assigns leaf positions left to right via a depth-first
// traversal, starting the counter at 1, and returns the number of
// positions assigned (including the sentinel if already appended).
func Number(root Node) int {
	next := 1
	var visit func(n Node)
	visit = func(n Node) {
		if n == nil {
			return
		}
		l, r := n.Children()
		visit(l)
		visit(r)
		if leaf, ok := n.(*leafNode); ok {
			leaf.pos = next
			next++
		}
	}
	visit(root)
	return next - 1
}

// AppendSentinel returns Cat(root, Leaf(#)), where the sentinel leaf
// carries an empty byte class (it never matches an input byte; it only
// ever marks the accepting position). Number must be called on the
// result, not on root alone, so the sentinel receives the highest
// position.
func AppendSentinel(root Node) Node {
	return newCat(root, newLeaf(charclass.Set{}))
}

// Draw renders the tree rooted at n as an indented, line-per-node
// listing, each child indented two spaces further than its parent.
// Grounded on vartan's byte-tree printer (grammar/lexical/dfa, since
// removed): a bare depth-first dump used to sanity-check a compiled
// automaton's shape while debugging.
func Draw(n Node) string {
	var b strings.Builder
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if n == nil {
			return
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.String())
		b.WriteByte('\n')
		l, r := n.Children()
		visit(l, depth+1)
		visit(r, depth+1)
	}
	visit(n, 0)
	return b.String()
}
