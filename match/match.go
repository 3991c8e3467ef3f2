// ==============================================================================================
// FILE: match/match.go
// ==============================================================================================
// PACKAGE: match
// PURPOSE: Binds a pattern term against a subject term, producing a variable
//          substitution. Matching never mutates the subject (spec §3
//          "Ownership"); the bound values in the table are the subject's own
//          subterms by reference, and it is the substitution step
//          (rewrite.substitute) that clones them on use.
// ==============================================================================================

package match

import "coral/term"

// Table maps a pattern variable's name to the subject subterm it bound to.
type Table map[string]*term.Term

// Match attempts to bind pattern against subject, recording bindings in
// table. It returns whether the match succeeded. table may already contain
// bindings from earlier calls within the same rule attempt; Match augments
// it in place.
func Match(pattern, subject *term.Term, table Table) bool {
	switch pattern.Kind {
	case term.AtomKind:
		return subject.IsAtom() && subject.Name == pattern.Name

	case term.VariableKind:
		if bound, ok := table[pattern.Name]; ok {
			return bound.Equal(subject)
		}
		table[pattern.Name] = subject
		return true

	default: // Application
		if subject.IsAtom() {
			// (f) as a pattern is equivalent to the atom f once simplified,
			// but an unsimplified single-element pattern application can
			// still reach here from replacement building; handle it the
			// way the matcher must per spec §4.3.
			head := pattern.Head()
			return len(pattern.Children) == 1 && head != nil && head.IsAtom() && head.Name == subject.Name
		}
		if !subject.IsApplication() || len(pattern.Children) > len(subject.Children) {
			return false
		}
		for i, p := range pattern.Children {
			if !Match(p, subject.Children[i], table) {
				return false
			}
		}
		return true
	}
}
