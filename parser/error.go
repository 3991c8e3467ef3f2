// ==============================================================================================
// FILE: parser/error.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: The parser's only error type. Every failure the state machine can
//          raise (spec §7 item 1) carries the offending token's position so
//          the REPL/CLI can print "message at line:column in 'file'" and
//          recover at the next prompt.
// ==============================================================================================

package parser

import (
	"fmt"

	"coral/token"
)

// SyntaxError is raised by the parser on an unexpected token or an
// unexpected end of line. It is never retried by the core; callers
// (repl, cmd/coral) report it and continue.
type SyntaxError struct {
	Message string
	File    string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d in '%s'", e.Message, e.Line, e.Column, e.File)
}

// unexpected builds the SyntaxError for a token the state machine did not
// expect at its current position, distinguishing the end-of-line case the
// way coral.py's `unexpected()` helper does.
func unexpected(tok token.Token) *SyntaxError {
	if tok.Kind == token.EndOfLine {
		return &SyntaxError{Message: "unexpected end of line", File: tok.File, Line: tok.Line, Column: tok.Column}
	}
	return &SyntaxError{
		Message: fmt.Sprintf("unexpected token '%s'", tok.Lexeme),
		File:    tok.File,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
