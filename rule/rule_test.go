package rule

import (
	"testing"

	"coral/term"
)

func TestAddRejectsVariableHead(t *testing.T) {
	set := NewSet()
	bad := Rule{LHS: term.NewVariable("X"), RHS: term.NewAtom("0")}
	if err := set.Add(bad); err == nil {
		t.Fatalf("expected an error adding a rule whose lhs has no atom head")
	}
}

func TestAddPreservesInsertionOrderWithinKey(t *testing.T) {
	set := NewSet()
	first := Rule{LHS: term.NewApplication(term.NewAtom("+"), term.NewVariable("A"), term.NewAtom("0")), RHS: term.NewVariable("A")}
	second := Rule{LHS: term.NewApplication(term.NewAtom("+"), term.NewVariable("A"), term.NewApplication(term.NewAtom("s"), term.NewVariable("B"))), RHS: term.NewAtom("0")}

	if err := set.Add(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := set.Add(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := set.Lookup("+")
	if len(got) != 2 {
		t.Fatalf("Lookup(\"+\") returned %d rules, want 2", len(got))
	}
	if !got[0].RHS.Equal(first.RHS) || !got[1].RHS.Equal(second.RHS) {
		t.Fatalf("Lookup order does not match insertion order")
	}
}

func TestKeysPreservesFirstInsertionOrder(t *testing.T) {
	set := NewSet()
	_ = set.Add(Rule{LHS: term.NewAtom("zero"), RHS: term.NewAtom("0")})
	_ = set.Add(Rule{LHS: term.NewAtom("one"), RHS: term.NewAtom("1")})
	_ = set.Add(Rule{LHS: term.NewAtom("zero"), RHS: term.NewAtom("0")})

	want := []string{"zero", "one"}
	got := set.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestMergeAppendsAfterExistingRules(t *testing.T) {
	a := NewSet()
	_ = a.Add(Rule{LHS: term.NewAtom("zero"), RHS: term.NewAtom("0")})

	b := NewSet()
	_ = b.Add(Rule{LHS: term.NewAtom("zero"), RHS: term.NewAtom("999")})

	a.Merge(b)
	got := a.Lookup("zero")
	if len(got) != 2 {
		t.Fatalf("Merge did not append, got %d rules under zero", len(got))
	}
	if got[0].RHS.Name != "0" || got[1].RHS.Name != "999" {
		t.Fatalf("Merge must preserve order: original rules first, then merged-in rules")
	}
}
