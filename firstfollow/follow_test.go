package firstfollow

import "testing"

func TestFollowOfStartContainsEnd(t *testing.T) {
	g := buildExprGrammar(t)
	fst, err := First(g)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	flw, err := Follow(g, fst)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	e := flw.Of(g.Start)
	if !e.HasEmpty() {
		t.Fatal("expected FOLLOW(start) to contain END")
	}
}

func TestFollowPropagatesThroughTrailingNonTerminal(t *testing.T) {
	g := buildExprGrammar(t)
	fst, err := First(g)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	flw, err := Follow(g, fst)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}

	epSym, _ := g.Symbols().ToSymbol("E'")
	e := flw.Of(epSym)
	if !e.HasEmpty() {
		t.Fatal("expected FOLLOW(E') to contain END, propagated from FOLLOW(E)")
	}
}

func TestFollowOfTGetsPlusAndEnd(t *testing.T) {
	g := buildExprGrammar(t)
	fst, err := First(g)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	flw, err := Follow(g, fst)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}

	tSym, _ := g.Symbols().ToSymbol("T")
	plus, _ := g.Symbols().ToSymbol("+")
	e := flw.Of(tSym)
	if !e.Contains(plus) {
		t.Fatal("expected FOLLOW(T) to contain '+' (from FIRST(E'))")
	}
	if !e.HasEmpty() {
		t.Fatal("expected FOLLOW(T) to contain END (E' nullable, propagated from FOLLOW(E))")
	}
}
