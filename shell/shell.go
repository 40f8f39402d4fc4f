// Package shell drives the interactive read-eval-print loop: read a
// line, expand aliases and variables, parse it into a pipeline, and
// hand it to an interp.Runner — printing a fresh prompt on SIGINT
// instead of letting it interrupt or kill the shell.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"jsh.dev/jsh/expand"
	"jsh.dev/jsh/interp"
	"jsh.dev/jsh/syntax"
)

// prompt formats the prompt string for the shell's current working
// directory: "[my_shell:<cwd>]$ ".
func prompt(r *interp.Runner) string {
	return fmt.Sprintf("[my_shell:%s]$ ", r.Dir)
}

// REPL drives one interactive session against a Runner.
type REPL struct {
	Runner *interp.Runner
}

// New returns a REPL for r.
func New(r *interp.Runner) *REPL {
	return &REPL{Runner: r}
}

// Run reads and executes commands until EOF, `exit`, or a read error.
// It reports r.LastStatus, which only built-ins set; the exit status of
// an external pipeline is not recorded.
//
// A line-reading goroutine and the main select loop run concurrently,
// coordinated with golang.org/x/sync/errgroup: SIGINT arriving while
// the reader is blocked on the terminal doesn't interrupt that read
// (the terminal's own line discipline already deals with in-progress
// input on Ctrl-C) — it only causes the loop to print a newline and
// redraw the prompt. On EOF the loop waits for the reader and returns
// its error; on `exit` it returns at once without waiting for the
// reader, which may still be blocked on the next line.
func (repl *REPL) Run() (status int, err error) {
	r := repl.Runner

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	lines := make(chan string)
	var g errgroup.Group
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(r.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		return scanner.Err()
	})

	fmt.Fprint(r.Stdout, prompt(r))
	for {
		select {
		case <-sigCh:
			fmt.Fprintln(r.Stdout)
			fmt.Fprint(r.Stdout, prompt(r))

		case line, ok := <-lines:
			if !ok {
				return r.LastStatus, g.Wait()
			}
			if exit := runLine(r, line); exit {
				return r.LastStatus, nil
			}
			fmt.Fprint(r.Stdout, prompt(r))
		}
	}
}

// RunScript executes every line of src in sequence against r, stopping
// at the first `exit` or the end of input — the non-interactive path
// used for `-c` and for piped/file stdin.
func RunScript(r *interp.Runner, src io.Reader) (status int, err error) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		if runLine(r, scanner.Text()) {
			return r.LastStatus, nil
		}
	}
	return r.LastStatus, scanner.Err()
}

// runLine expands, parses, and executes a single input line against r,
// reporting whether the shell should exit. Parse errors are printed to
// r.Stderr here; exec and built-in errors are already reported there by
// interp; the caller only needs the exit signal.
func runLine(r *interp.Runner, line string) (exit bool) {
	if strings.TrimSpace(line) == "" {
		return false
	}
	r.History.Add(line)

	rest, background := syntax.StripTrailingBackground(line)
	toks := syntax.Tokenize(rest)
	toks = expand.Aliases(toks, r.Aliases, syntax.Tokenize)
	toks = expand.Variables(toks, r.Env)

	pl, err := syntax.Parse(toks)
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		return false
	}

	exit, _ = r.Run(pl, background, line)
	return exit
}
