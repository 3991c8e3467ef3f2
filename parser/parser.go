// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Consumes the token stream lexer.Tokenize produces and builds the
//          Terms/Rules the engine operates on. One state machine, parameterized
//          by Mode, serves all three parse contexts the spec defines: a rule's
//          left-hand side, a rule's right-hand side, and a user query.
// ==============================================================================================

package parser

import (
	"coral/rule"
	"coral/term"
	"coral/token"
)

// Mode selects which of the three parse contexts the state machine runs in.
type Mode int

const (
	// Left parses the left-hand side of a rule. Must begin with an Atom;
	// terminates at a top-level '=' symbol.
	Left Mode = iota
	// Right parses the right-hand side of a rule; terminates at a
	// top-level end of line.
	Right
	// Input parses a user query. Variables are forbidden; terminates at a
	// top-level end of line.
	Input
)

// ParseTerm parses a single term starting at tokens[start], in the given
// mode, and returns the term along with the index of the token that
// terminated it (the '=' or end-of-line token itself — not yet consumed).
func ParseTerm(tokens []token.Token, start int, mode Mode) (*term.Term, int, error) {
	current := &term.Term{Kind: term.ApplicationKind}
	var stack []*term.Term

	i := start
	for i < len(tokens) {
		tok := tokens[i]

		switch {
		case tok.Kind == token.Atom:
			current.Children = append(current.Children, term.NewAtom(tok.Lexeme))

		case tok.Kind == token.Variable:
			if mode == Input {
				return nil, i, unexpected(tok)
			}
			if mode == Left && len(current.Children) == 0 && len(stack) == 0 {
				return nil, i, unexpected(tok)
			}
			current.Children = append(current.Children, term.NewVariable(tok.Lexeme))

		case tok.Kind == token.EndOfLine:
			if len(stack) != 0 {
				return nil, i, unexpected(tok)
			}
			if mode != Left {
				return finish(current, stack, tokens, i)
			}
			if len(current.Children) == 0 {
				// blank line inside a Left term: keep scanning.
				i++
				continue
			}
			return nil, i, unexpected(tok)

		case tok.IsSymbol("="):
			if len(stack) == 0 && mode == Left {
				return finish(current, stack, tokens, i)
			}
			return nil, i, unexpected(tok)

		case tok.IsSymbol("("):
			child := &term.Term{Kind: term.ApplicationKind}
			current.Children = append(current.Children, child)
			stack = append(stack, current)
			current = child

		case tok.IsSymbol(")"):
			if len(stack) == 0 || len(current.Children) == 0 {
				return nil, i, unexpected(tok)
			}
			closed := current
			parent := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent.Children[len(parent.Children)-1] = term.Simplify(closed)
			current = parent
		}

		i++
	}

	// Tokens are always terminated by an EndOfLine (lexer.Tokenize's
	// contract), so falling off the end of the loop only happens if start
	// was already past every token; treat it like hitting that final token.
	return finish(current, stack, tokens, len(tokens)-1)
}

// finish validates and closes out a parse: an unbalanced stack or an empty
// top-level group is an error citing the terminating token, mirroring
// coral.py's post-loop check (`len(chain) > 0 or len(group) == 0`).
func finish(current *term.Term, stack []*term.Term, tokens []token.Token, at int) (*term.Term, int, error) {
	if len(stack) > 0 || len(current.Children) == 0 {
		return nil, at, unexpected(tokens[at])
	}
	return term.Simplify(current), at, nil
}

// ParseQuery parses a complete user query (Input mode) from the start of
// tokens and returns the resulting term. Trailing tokens beyond the
// terminating end-of-line are ignored, matching the REPL's one-term-per-line
// contract.
func ParseQuery(tokens []token.Token) (*term.Term, error) {
	t, _, err := ParseTerm(tokens, 0, Input)
	return t, err
}

// ParseLibrary parses a full library token stream into rules and adds them
// to set, in file order, per spec §4.2's "library is parsed by repeatedly
// skipping EndOfLine tokens..." procedure. Parsing stops once a syntax
// error is found or the token stream is exhausted.
func ParseLibrary(tokens []token.Token, set *rule.Set) error {
	i := 0
	for i < len(tokens) {
		for i < len(tokens) && tokens[i].Kind == token.EndOfLine {
			i++
		}
		if i >= len(tokens) {
			break
		}

		lhsStart := i
		lhs, eqIdx, err := ParseTerm(tokens, i, Left)
		if err != nil {
			return err
		}
		i = eqIdx + 1

		rhs, eolIdx, err := ParseTerm(tokens, i, Right)
		if err != nil {
			return err
		}
		i = eolIdx + 1

		if err := set.Add(rule.Rule{LHS: lhs, RHS: rhs}); err != nil {
			return &SyntaxError{
				Message: err.Error(),
				File:    tokens[lhsStart].File,
				Line:    tokens[lhsStart].Line,
				Column:  tokens[lhsStart].Column,
			}
		}
	}
	return nil
}
