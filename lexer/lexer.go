// ==============================================================================================
// FILE: lexer/lexer.go
// ==============================================================================================
// PACKAGE: lexer
// PURPOSE: Converts a line-oriented character stream into the token stream
//          the parser consumes. Whitespace and '#' comments never become
//          tokens; every other character either forms a Symbol or joins a
//          maximal run of "word" characters that becomes an Atom or a
//          Variable, decided by the case of its first rune.
// ==============================================================================================

package lexer

import (
	"bufio"
	"io"
	"unicode"

	"coral/token"
)

const symbolChars = "()="

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

func isSymbol(r rune) bool {
	for _, s := range symbolChars {
		if r == s {
			return true
		}
	}
	return false
}

// isNonWord reports whether r can never be part of an Atom/Variable word:
// whitespace, the three symbol characters, or '#' (comment marker).
func isNonWord(r rune) bool {
	return isWhitespace(r) || isSymbol(r) || r == '#'
}

// Tokenize reads every line of r and returns the full token stream for the
// given filename, terminated by a final token.EndOfLine as §4.1 requires.
// Tokenize never fails on well-formed UTF-8 input: malformed terms are a
// parser-level concern (spec §4.1 "Failure").
func Tokenize(r io.Reader, filename string) ([]token.Token, error) {
	var tokens []token.Token

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 1
	for scanner.Scan() {
		tokens = append(tokens, tokenizeLine(scanner.Text(), filename, line)...)
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tokens = append(tokens, token.Token{Kind: token.EndOfLine, Lexeme: "\n", File: filename, Line: line, Column: 1})
	return tokens, nil
}

// tokenizeLine scans a single physical line left to right and always emits a
// trailing token.EndOfLine for that line, per §4.1.
func tokenizeLine(line string, filename string, lineNo int) []token.Token {
	var out []token.Token
	runes := []rune(line)
	col := 0 // 0-based rune index into the line

	for {
		// skip whitespace
		for col < len(runes) && isWhitespace(runes[col]) {
			col++
		}

		// a '#' discards the remainder of the line
		if col < len(runes) && runes[col] == '#' {
			col = len(runes)
		}

		if col >= len(runes) {
			out = append(out, token.Token{Kind: token.EndOfLine, Lexeme: "\n", File: filename, Line: lineNo, Column: col + 1})
			return out
		}

		if isSymbol(runes[col]) {
			out = append(out, token.Token{
				Kind:   token.Symbol,
				Lexeme: string(runes[col]),
				File:   filename,
				Line:   lineNo,
				Column: col + 1,
			})
			col++
			continue
		}

		start := col
		for col < len(runes) && !isNonWord(runes[col]) {
			col++
		}
		word := string(runes[start:col])
		kind := token.Atom
		if unicode.IsUpper(runes[start]) {
			kind = token.Variable
		}
		out = append(out, token.Token{Kind: kind, Lexeme: word, File: filename, Line: lineNo, Column: start + 1})
	}
}
