// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface.
//          It connects the user input stream to the engine pipeline
//          (lexer -> parser -> driver) and manages the persistent rule set
//          across the session, including the bare exit/quit/reload commands
//          coral.py's main() recognizes (spec's loader contract, §1(a)).
// ==============================================================================================

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coral/driver"
	"coral/lexer"
	"coral/loader"
	"coral/parser"
	"coral/rule"
)

// ----------------------------------------------------------------------------
// UI CONSTANTS
// ----------------------------------------------------------------------------

const (
	prompt = "> "
	logo   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ____                 _               ┃
┃ / ___|___  _ __ __ _ | |              ┃
┃| |   / _ \| '__/ _` + "`" + ` || |              ┃
┃| |__| (_) | | | (_| || |              ┃
┃ \____\___/|_|  \__,_||_|              ┃
┃                                       ┃
┃ term rewriting, one reduction at a time ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// ANSI color codes for terminal output, matched to the teacher's palette.
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	gray   = "\033[37m"
	bold   = "\033[1m"
)

// Session holds the state that persists across lines of a REPL run: the
// current rule set and the library paths reload re-reads.
type Session struct {
	Paths     []string
	CachePath string
	Rules     *rule.Set

	// ID correlates this session's log lines, the way a request ID would
	// for the server package's handlers.
	ID uuid.UUID
}

// NewSession builds a session by loading every path in order (spec §9 "rule
// ordering ... file order across files"). An empty cachePath disables the
// snapshot cache.
func NewSession(paths []string, cachePath string) (*Session, error) {
	set, err := loader.LoadAllCached(paths, cachePath)
	if err != nil {
		return nil, err
	}
	return &Session{Paths: paths, CachePath: cachePath, Rules: set, ID: uuid.New()}, nil
}

// Start launches the Read-Eval-Print Loop. out receives both the REPL's own
// output (logo, results, errors) and the print built-in's side-effect
// output; the prompt is drawn by readline's line editor, which also supplies
// the input, so the caller only supplies out for rendering.
func Start(sess *Session, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          bold + prompt + reset,
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	log := logrus.WithField("session", sess.ID.String())
	fmt.Fprint(out, logo)
	log.Info("repl session started")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit":
			fmt.Fprintln(out, yellow+"bye"+reset)
			return nil

		case "reload":
			set, err := loader.LoadAllCached(sess.Paths, sess.CachePath)
			if err != nil {
				fmt.Fprintf(out, red+"reload failed: %s\n"+reset, err)
				log.WithError(err).Warn("reload failed")
				continue
			}
			sess.Rules = set
			fmt.Fprintln(out, green+"libraries reloaded"+reset)
			continue
		}

		result, err := Eval(line, sess.Rules, out)
		if err != nil {
			fmt.Fprintln(out, red+err.Error()+reset)
			continue
		}
		fmt.Fprintln(out, result)
	}
}

// Eval parses a single line as a query and reduces it to normal form against
// set, writing any print built-in output to out. It is the non-interactive
// half of the loop, also used directly by cmd/coral's "run" subcommand.
func Eval(line string, set *rule.Set, out io.Writer) (string, error) {
	tokens, err := lexer.Tokenize(strings.NewReader(line), "<stdin>")
	if err != nil {
		return "", err
	}
	term, err := parser.ParseQuery(tokens)
	if err != nil {
		return "", err
	}
	reduced, err := driver.FullReduce(term, set, out)
	if err != nil {
		return "", err
	}
	return reduced.String(), nil
}
