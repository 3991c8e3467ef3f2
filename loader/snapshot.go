// ==============================================================================================
// FILE: loader/snapshot.go
// ==============================================================================================
// PACKAGE: loader
// PURPOSE: A binary cache of a parsed rule.Set, keyed by the mtimes of the
//          library files it came from. `reload` consults it before
//          re-tokenizing and re-parsing every file from scratch; a stale or
//          missing cache falls back to LoadAll transparently (SPEC_FULL.md
//          §D "Snapshot cache" — caching only, never a semantic change).
// ==============================================================================================

package loader

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/sirupsen/logrus"

	"coral/rule"
)

// snapshotRule is the wire form of a single rule: its lhs/rhs rendered back
// to Coral source text. Re-parsing "LHS = RHS" on load is cheap and sidesteps
// needing a bespoke binary encoding for term.Term's recursive shape.
type snapshotRule struct {
	LHS string
	RHS string
}

// snapshot is the struct rezi.EncBinary/DecBinary operate on: plain,
// exported fields only, the same shape rezi.EncBinary(s.State) expects in
// the pack's own usage (server/dao/sqlite/sqlite.go).
type snapshot struct {
	MTimes map[string]int64
	Rules  []snapshotRule
}

// snapshotOf records the current mtime of every path and renders every rule
// in set to source text, suitable for SaveSnapshot.
func snapshotOf(paths []string, set *rule.Set) (snapshot, error) {
	mtimes, err := mtimesOf(paths)
	if err != nil {
		return snapshot{}, err
	}
	s := snapshot{MTimes: mtimes}
	for _, key := range set.Keys() {
		for _, r := range set.Lookup(key) {
			s.Rules = append(s.Rules, snapshotRule{LHS: r.LHS.String(), RHS: r.RHS.String()})
		}
	}
	return s, nil
}

func mtimesOf(paths []string) (map[string]int64, error) {
	mtimes := make(map[string]int64, len(paths))
	for _, p := range paths {
		info, err := os.Stat(withSuffix(p))
		if err != nil {
			return nil, err
		}
		mtimes[withSuffix(p)] = info.ModTime().UnixNano()
	}
	return mtimes, nil
}

// SaveSnapshot writes a binary snapshot of set (loaded from paths) to
// cachePath, for a later LoadSnapshot to pick up.
func SaveSnapshot(cachePath string, paths []string, set *rule.Set) error {
	s, err := snapshotOf(paths, set)
	if err != nil {
		return err
	}
	data := rezi.EncBinary(s)
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return err
	}
	logrus.WithField("path", cachePath).Debug("wrote rule set snapshot")
	return nil
}

// LoadSnapshot loads cachePath and rebuilds a rule.Set from it, but only if
// every path in paths still has the mtime recorded in the snapshot. It
// returns (nil, false, nil) on any cache miss (missing file, stale mtime,
// corrupt data) so the caller can fall back to LoadAll without treating a
// miss as an error.
func LoadSnapshot(cachePath string, paths []string) (*rule.Set, bool, error) {
	raw, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false, nil
	}

	var s snapshot
	if _, err := rezi.DecBinary(raw, &s); err != nil {
		return nil, false, nil
	}

	current, err := mtimesOf(paths)
	if err != nil {
		return nil, false, err
	}
	if len(current) != len(s.MTimes) {
		return nil, false, nil
	}
	for path, mtime := range current {
		if s.MTimes[path] != mtime {
			return nil, false, nil
		}
	}

	set := rule.NewSet()
	for _, r := range s.Rules {
		if err := LoadText(fmt.Sprintf("%s = %s\n", r.LHS, r.RHS), cachePath, set); err != nil {
			return nil, false, nil
		}
	}
	logrus.WithField("path", cachePath).Debug("rule set snapshot hit")
	return set, true, nil
}
