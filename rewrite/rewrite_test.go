package rewrite

import (
	"bytes"
	"errors"
	"testing"

	"coral/rule"
	"coral/term"
)

func mustSet(t *testing.T, rules ...rule.Rule) *rule.Set {
	t.Helper()
	set := rule.NewSet()
	for _, r := range rules {
		if err := set.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return set
}

func TestStepAtomRule(t *testing.T) {
	set := mustSet(t, rule.Rule{LHS: term.NewAtom("zero"), RHS: term.NewAtom("0")})
	got, ok, err := Step(term.NewAtom("zero"), set, nil)
	if err != nil || !ok {
		t.Fatalf("Step(zero) = (%v, %v, %v), want a successful rewrite", got, ok, err)
	}
	if !got.Equal(term.NewAtom("0")) {
		t.Fatalf("got %s, want 0", got)
	}
}

func TestStepNoApplicableRuleIsNotAnError(t *testing.T) {
	set := rule.NewSet()
	got, ok, err := Step(term.NewAtom("mystery"), set, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("Step with no matching rule must report ok=false, got (%v, %v)", got, ok)
	}
}

func TestStepApplicationLHSPartialApplication(t *testing.T) {
	// + A 0 = A, applied against (+ zero 0 extra)
	set := mustSet(t, rule.Rule{
		LHS: term.NewApplication(term.NewAtom("+"), term.NewVariable("A"), term.NewAtom("0")),
		RHS: term.NewVariable("A"),
	})
	subject := term.NewApplication(term.NewAtom("+"), term.NewAtom("zero"), term.NewAtom("0"), term.NewAtom("extra"))

	got, ok, err := Step(subject, set, nil)
	if err != nil || !ok {
		t.Fatalf("Step = (%v, %v, %v), want a successful rewrite", got, ok, err)
	}
	want := term.NewApplication(term.NewAtom("zero"), term.NewAtom("extra"))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestStepUnboundRHSVariableFails(t *testing.T) {
	set := mustSet(t, rule.Rule{LHS: term.NewAtom("zero"), RHS: term.NewVariable("X")})
	_, _, err := Step(term.NewAtom("zero"), set, nil)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Fatalf("err = %v, want ErrUnboundVariable", err)
	}
}

func TestStepPrintBuiltinSideEffect(t *testing.T) {
	var out bytes.Buffer
	subject := term.NewApplication(term.NewAtom("print"), term.NewApplication(term.NewAtom("s"), term.NewAtom("0")))

	got, ok, err := Step(subject, rule.NewSet(), &out)
	if err != nil || !ok {
		t.Fatalf("Step(print ...) = (%v, %v, %v)", got, ok, err)
	}
	if !got.Equal(term.NewApplication(term.NewAtom("s"), term.NewAtom("0"))) {
		t.Fatalf("print must reduce to its argument, got %s", got)
	}
	if out.String() != "s 0\n" {
		t.Fatalf("print output = %q, want %q", out.String(), "s 0\n")
	}
}

func TestStepSubstitutionHappensBeforeSimplify(t *testing.T) {
	// * A (s B) = + A (* A B); once A and B are bound, the rhs's application
	// structure must still flatten correctly after substitution.
	set := mustSet(t, rule.Rule{
		LHS: term.NewApplication(term.NewAtom("*"), term.NewVariable("A"), term.NewApplication(term.NewAtom("s"), term.NewVariable("B"))),
		RHS: term.NewApplication(term.NewAtom("+"), term.NewVariable("A"), term.NewApplication(term.NewAtom("*"), term.NewVariable("A"), term.NewVariable("B"))),
	})
	subject := term.NewApplication(term.NewAtom("*"), term.NewAtom("two"), term.NewApplication(term.NewAtom("s"), term.NewAtom("0")))

	got, ok, err := Step(subject, set, nil)
	if err != nil || !ok {
		t.Fatalf("Step = (%v, %v, %v)", got, ok, err)
	}
	want := term.NewApplication(term.NewAtom("+"), term.NewAtom("two"), term.NewApplication(term.NewAtom("*"), term.NewAtom("two"), term.NewAtom("0")))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}
