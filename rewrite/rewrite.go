// ==============================================================================================
// FILE: rewrite/rewrite.go
// ==============================================================================================
// PACKAGE: rewrite
// PURPOSE: Single-step rule application (spec §4.4), including the `print`
//          built-in's side effect. The driver (package driver) repeatedly
//          calls Step to drive a term to normal form; Step itself never
//          traverses beyond the term it is given.
// ==============================================================================================

package rewrite

import (
	"errors"
	"fmt"
	"io"

	"coral/match"
	"coral/rule"
	"coral/term"
)

// ErrUnboundVariable is returned when a rule's right-hand side references a
// variable that the left-hand side never bound. Spec §9 leaves this
// undefined in the source and asks implementations to pick either "leave it
// literal" or "fail"; this package picks the latter (§9, "Choose (b) for
// safety").
var ErrUnboundVariable = errors.New("rewrite: unbound variable in rule right-hand side")

// Step attempts one rewrite of t using set. It returns the replacement term
// and true if a rule applied (or the print built-in fired), or (nil, false)
// if no rule applies — which is not an error, just a signal for the driver
// to look elsewhere (spec §7 item 3).
//
// out receives the built-in print effect's output; pass nil to discard it
// (Step will still perform the rewrite).
func Step(t *term.Term, set *rule.Set, out io.Writer) (*term.Term, bool, error) {
	switch t.Kind {
	case term.VariableKind:
		return nil, false, nil

	case term.AtomKind:
		for _, r := range set.Lookup(t.Name) {
			table := match.Table{}
			if !match.Match(r.LHS, t, table) {
				continue
			}
			replaced, err := substitute(r.RHS.Clone(), table)
			if err != nil {
				return nil, false, err
			}
			return replaced, true, nil
		}
		return nil, false, nil

	default: // Application
		head := t.Head()
		if head == nil || !head.IsAtom() {
			return nil, false, nil
		}

		if head.Name == "print" && len(t.Children) == 2 {
			if out != nil {
				fmt.Fprintln(out, t.Children[1].String())
			}
			return t.Children[1].Clone(), true, nil
		}

		for _, r := range set.Lookup(head.Name) {
			table := match.Table{}
			if !match.Match(r.LHS, t, table) {
				continue
			}
			replaced, err := apply(r, t, table)
			if err != nil {
				return nil, false, err
			}
			return replaced, true, nil
		}
		return nil, false, nil
	}
}

// apply builds the replacement for a single matched rule r against subject
// t, per spec §4.4's three cases (atom lhs, application lhs with atom/var
// rhs, application lhs with application rhs). Substitution happens before
// group simplification, not after: a bound variable may itself expand into
// an Application, and only once that expansion sits in place can a
// head-application flatten (invariant 2) be detected.
func apply(r rule.Rule, t *term.Term, table match.Table) (*term.Term, error) {
	var children []*term.Term
	if r.LHS.IsAtom() {
		// length-1 pattern exactly matching t's head: rhs followed by the
		// remaining children.
		children = append([]*term.Term{r.RHS.Clone()}, t.Children[1:]...)
	} else {
		k := len(r.LHS.Children)
		suffix := t.Children[k:]
		if r.RHS.IsApplication() {
			children = append(append([]*term.Term{}, r.RHS.Clone().Children...), suffix...)
		} else {
			children = append([]*term.Term{r.RHS.Clone()}, suffix...)
		}
	}

	substituted, err := substitute(&term.Term{Kind: term.ApplicationKind, Children: children}, table)
	if err != nil {
		return nil, err
	}
	return term.Simplify(substituted), nil
}

// substitute walks replacement and replaces each Variable node with a deep
// clone of its binding in table (spec §4.4 "Substitution"). An unbound
// variable is a malformed rule (spec §9) and is reported as an error.
func substitute(replacement *term.Term, table match.Table) (*term.Term, error) {
	switch replacement.Kind {
	case term.VariableKind:
		bound, ok := table[replacement.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, replacement.Name)
		}
		return bound.Clone(), nil

	case term.AtomKind:
		return replacement, nil

	default:
		for i, child := range replacement.Children {
			substituted, err := substitute(child, table)
			if err != nil {
				return nil, err
			}
			replacement.Children[i] = substituted
		}
		return replacement, nil
	}
}
