// ==============================================================================================
// FILE: driver/driver.go
// ==============================================================================================
// PACKAGE: driver
// PURPOSE: The reduction strategy that drives a term to normal form:
//          outermost, leftmost-like, breadth-first with restart (spec §4.5).
//          Every successful rewrite discards the work queue and restarts
//          from the root, so outer redexes always get first refusal; a
//          position's children are only enqueued once that position itself
//          is stuck.
// ==============================================================================================

package driver

import (
	"io"

	"coral/rewrite"
	"coral/rule"
	"coral/term"
)

// position names a child slot to attempt a rewrite at: parent.Children[index].
// The root position has a nil parent; FullReduce tracks the current root
// separately since the root has no parent slot to write back into.
type position struct {
	parent *term.Term
	index  int
}

// FullReduce reduces root using set until no rule applies anywhere in the
// term, per spec §4.5, and returns the normal form. out receives the
// built-in print effect's output (see rewrite.Step); pass nil to discard it.
func FullReduce(root *term.Term, set *rule.Set, out io.Writer) (*term.Term, error) {
	queue := []position{{parent: nil, index: -1}}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		current := root
		if pos.parent != nil {
			current = pos.parent.Children[pos.index]
		}

		replaced, ok, err := rewrite.Step(current, set, out)
		if err != nil {
			return nil, err
		}

		if !ok {
			if current.IsApplication() {
				for i := 1; i < len(current.Children); i++ {
					queue = append(queue, position{parent: current, index: i})
				}
			}
			continue
		}

		if pos.parent == nil {
			root = replaced
		} else {
			pos.parent.Children[pos.index] = replaced
		}
		queue = []position{{parent: nil, index: -1}}
	}

	return root, nil
}
