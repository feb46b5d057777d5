package firstfollow

import "github.com/coolcc/coolcc/grammar"

// Follow computes FOLLOW(A) for every non-terminal A in g, given the
// grammar's FIRST sets. FOLLOW(start) always contains END.
//
// Propagation rule, applied to every occurrence of a non-terminal Xi
// in a production L -> ... Xi Y1 Y2 ... Yn:
//
//   - FOLLOW(Xi) gains FIRST(Y1 Y2 ... Yn) minus EMPTY.
//   - If Y1 Y2 ... Yn is nullable (including the case n == 0, i.e. Xi
//     is the last symbol of the production), FOLLOW(Xi) also gains
//     FOLLOW(L) -- except when L == Xi, which is skipped. This guard
//     mirrors original_source's
//     recursive_descent_parser_generator.cpp ComputeFollowPass, which
//     asserts from_follow_pe != to_follow_pe before folding FOLLOW(L)
//     into FOLLOW(Xi) and simply skips the fold when they are equal,
//     rather than the textbook algorithm's unconditional merge.
func Follow(g *grammar.Grammar, fst *Set) (*Set, error) {
	flw := &Set{entries: map[grammar.Symbol]*Entry{}}
	for _, nt := range g.NonTerminals {
		flw.find(nt)
	}

	for {
		more := false

		if flw.find(g.Start).addEmpty() {
			more = true
		}

		for _, p := range g.Productions {
			for i, sym := range p.RHS {
				if !sym.IsNonTerminal() {
					continue
				}
				e := flw.find(sym)

				rest := OfSequence(fst, p.RHS[i+1:])
				if e.merge(rest) {
					more = true
				}

				if rest.HasEmpty() {
					if p.LHS != sym {
						lflw := flw.find(p.LHS)
						if e.merge(lflw) {
							more = true
						}
						if lflw.empty && e.addEmpty() {
							more = true
						}
					}
				}
			}
		}

		if !more {
			break
		}
	}
	return flw, nil
}
