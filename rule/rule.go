// ==============================================================================================
// FILE: rule/rule.go
// ==============================================================================================
// PACKAGE: rule
// PURPOSE: A Rule pairs a left-hand pattern with a right-hand replacement. A
//          Set indexes rules by head key, preserving insertion order within
//          a key, because first-match-wins-in-insertion-order is part of
//          Coral's observable semantics (spec §3 "Rule set").
// ==============================================================================================

package rule

import (
	"fmt"

	"coral/term"
)

// Rule is a parsed `lhs = rhs` line from a library file.
type Rule struct {
	LHS *term.Term
	RHS *term.Term
}

// HeadKey returns the atom name used to index this rule, or an error if the
// left-hand side has no atom head — a parser must reject such rules before
// they ever reach a Set (spec §3 "Rule").
func (r Rule) HeadKey() (string, error) {
	key, ok := r.LHS.HeadKey()
	if !ok {
		return "", fmt.Errorf("rule left-hand side %q has no atom head", r.LHS)
	}
	return key, nil
}

// Set is a rule set: a mapping from head key to an ordered list of rules.
// The zero value is not ready to use; call NewSet.
type Set struct {
	byKey map[string][]Rule
	// keys preserves first-insertion order of head keys, purely so Keys()
	// and diagnostics are deterministic; match order within a key is what
	// spec §3 actually requires to be stable, and that is byKey's slice order.
	keys []string
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{byKey: make(map[string][]Rule)}
}

// Add appends r to the ordered list for its head key. Insertion order is
// preserved and is semantically significant: the matcher tries rules under
// a key in this order and the first match wins (spec §3, §4.4).
func (s *Set) Add(r Rule) error {
	key, err := r.HeadKey()
	if err != nil {
		return err
	}
	if _, ok := s.byKey[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.byKey[key] = append(s.byKey[key], r)
	return nil
}

// Lookup returns the ordered rule list for a head key. The returned slice
// must not be mutated by callers.
func (s *Set) Lookup(key string) []Rule {
	return s.byKey[key]
}

// Len returns the total number of rules across all head keys.
func (s *Set) Len() int {
	n := 0
	for _, rules := range s.byKey {
		n += len(rules)
	}
	return n
}

// Keys returns head keys in first-insertion order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Merge adds every rule of other into s, preserving other's per-key order.
// loader.LoadAll parses each library file into its own Set and Merges them
// into one combined Set in path order, so file-order precedence (spec §9
// "rule ordering ... file order across files") is enforced here rather than
// by every file sharing one mutable Set.
func (s *Set) Merge(other *Set) {
	for _, key := range other.keys {
		for _, r := range other.byKey[key] {
			_ = s.Add(r)
		}
	}
}
