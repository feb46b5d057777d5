package regex

import (
	"strings"
	"testing"

	"github.com/coolcc/coolcc/charclass"
)

// buildABStar builds the tree for (a|b)*abb, a textbook followpos example,
// and appends the sentinel so FirstPos/LastPos/Nullable can be
// checked against known values.
func buildABStar() Node {
	a := func() Node { return newLeaf(charclass.Single('a')) }
	b := func() Node { return newLeaf(charclass.Single('b')) }

	or := newOr(a(), b())
	star := newStar(or)
	cat := newCat(newCat(newCat(star, a()), b()), b())
	return AppendSentinel(cat)
}

func TestNumberAssignsLeftToRight(t *testing.T) {
	root := buildABStar()
	n := Number(root)
	if n != 6 {
		t.Fatalf("expected 6 leaves (a, b, a, b, b, sentinel), got %d", n)
	}
}

func TestNullableOfStarIsTrue(t *testing.T) {
	leaf := newLeaf(charclass.Single('a'))
	star := newStar(leaf)
	if !star.Nullable() {
		t.Fatal("Star must always be nullable")
	}
}

func TestNullableOfCat(t *testing.T) {
	a := newLeaf(charclass.Single('a'))
	starA := newStar(a)
	b := newLeaf(charclass.Single('b'))

	cat := newCat(starA, b)
	if cat.Nullable() {
		t.Fatal("a* . b must not be nullable since b is not nullable")
	}

	catNullable := newCat(starA, newStar(b))
	if !catNullable.Nullable() {
		t.Fatal("a* . b* must be nullable")
	}
}

func TestFirstPosLastPosOr(t *testing.T) {
	a := newLeaf(charclass.Single('a'))
	b := newLeaf(charclass.Single('b'))
	or := newOr(a, b)
	Number(or)

	if len(or.FirstPos()) != 2 || len(or.LastPos()) != 2 {
		t.Fatalf("expected both leaves in first/last pos of an Or node")
	}
}

func TestFirstPosCatSkipsRightWhenLeftNotNullable(t *testing.T) {
	a := newLeaf(charclass.Single('a'))
	b := newLeaf(charclass.Single('b'))
	cat := newCat(a, b)
	Number(cat)

	fp := cat.FirstPos()
	if len(fp) != 1 {
		t.Fatalf("expected firstpos(a.b) = {1}, got %v", fp)
	}
	if _, ok := fp[a.pos]; !ok {
		t.Fatalf("expected firstpos to contain a's position")
	}
}

func TestFirstPosCatIncludesRightWhenLeftNullable(t *testing.T) {
	a := newLeaf(charclass.Single('a'))
	starA := newStar(a)
	b := newLeaf(charclass.Single('b'))
	cat := newCat(starA, b)
	Number(cat)

	fp := cat.FirstPos()
	if len(fp) != 2 {
		t.Fatalf("expected firstpos(a*.b) to include both leaves, got %v", fp)
	}
}

func TestPosSetString(t *testing.T) {
	s := newPosSet(3, 1, 2)
	if s.String() != "{1,2,3}" {
		t.Fatalf("expected sorted set string, got %s", s.String())
	}
}

func TestAppendSentinelAddsTrailingLeaf(t *testing.T) {
	a := newLeaf(charclass.Single('a'))
	withSentinel := AppendSentinel(a)
	n := Number(withSentinel)
	if n != 2 {
		t.Fatalf("expected 2 positions after appending sentinel, got %d", n)
	}
}

func TestDrawIndentsChildrenUnderParent(t *testing.T) {
	tree := buildABStar()
	out := Draw(tree)
	if !strings.Contains(out, "Cat\n") {
		t.Fatalf("expected a Cat line in %q", out)
	}
	if !strings.Contains(out, "\n        Star\n") {
		t.Fatalf("expected Star indented four levels in %q", out)
	}
	if !strings.Contains(out, "\n          Or\n") {
		t.Fatalf("expected Or indented five levels in %q", out)
	}
}
