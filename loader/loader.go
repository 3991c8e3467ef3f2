// ==============================================================================================
// FILE: loader/loader.go
// ==============================================================================================
// PACKAGE: loader
// PURPOSE: The core's one external collaborator contract named in spec §1(a):
//          "a function that accepts text + a filename and extends a rule
//          set". Load wraps that around real file I/O and the `.coral`
//          naming convention (spec §6). This package also owns the optional
//          binary snapshot cache (SPEC_FULL.md §D) used by `reload`.
// ==============================================================================================

package loader

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"coral/lexer"
	"coral/parser"
	"coral/rule"
)

// withSuffix appends the ".coral" extension if the caller omitted it, per
// spec §6 "File-name convention".
func withSuffix(path string) string {
	if strings.HasSuffix(path, ".coral") {
		return path
	}
	return path + ".coral"
}

// LoadText parses source text in library mode under the given filename and
// adds the resulting rules to set. This is the "text + filename" contract
// spec §1(a) names; it performs no I/O of its own.
func LoadText(source, filename string, set *rule.Set) error {
	tokens, err := lexer.Tokenize(strings.NewReader(source), filename)
	if err != nil {
		return err
	}
	return parser.ParseLibrary(tokens, set)
}

// Load reads a `.coral` library file from disk and extends set with its
// rules. It is the REPL/CLI's file-backed wrapper around LoadText.
func Load(path string, set *rule.Set) error {
	resolved := withSuffix(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		return err
	}
	if err := LoadText(string(data), resolved, set); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": resolved, "rules": set.Len()}).Debug("library loaded")
	return nil
}

// LoadAll builds a fresh rule set from every path in order, the way
// coral.py's main() loop and `reload` command both do: later files' rules
// are appended after earlier files' (spec §9 "rule ordering ... file order
// across files"). Each file is parsed into its own Set first and then
// Merge'd into the combined one, so the file-order guarantee is enforced by
// Merge itself rather than by every file sharing one mutable Set.
func LoadAll(paths []string) (*rule.Set, error) {
	combined := rule.NewSet()
	for _, p := range paths {
		fileSet := rule.NewSet()
		if err := Load(p, fileSet); err != nil {
			return nil, err
		}
		combined.Merge(fileSet)
	}
	logrus.WithFields(logrus.Fields{"files": len(paths), "rules": combined.Len()}).Info("libraries loaded")
	return combined, nil
}

// LoadAllCached behaves like LoadAll, but first tries cachePath's snapshot
// (see snapshot.go); a miss falls back to LoadAll and, on success, refreshes
// the cache for next time. An empty cachePath disables caching entirely.
func LoadAllCached(paths []string, cachePath string) (*rule.Set, error) {
	if cachePath == "" {
		return LoadAll(paths)
	}

	if set, hit, err := LoadSnapshot(cachePath, paths); err != nil {
		return nil, err
	} else if hit {
		logrus.WithField("path", cachePath).Info("libraries loaded from snapshot")
		return set, nil
	}

	set, err := LoadAll(paths)
	if err != nil {
		return nil, err
	}
	if err := SaveSnapshot(cachePath, paths, set); err != nil {
		logrus.WithError(err).Warn("failed to refresh rule set snapshot")
	}
	return set, nil
}
