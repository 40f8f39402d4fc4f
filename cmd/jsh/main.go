// jsh is an interactive job-control shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"jsh.dev/jsh/expand"
	"jsh.dev/jsh/interp"
	"jsh.dev/jsh/shell"
)

var (
	command     = flag.String("c", "", "command to execute, instead of reading a script or starting a REPL")
	historySize = flag.Int("histsize", 500, "number of command-history entries to keep")
)

func main() {
	os.Exit(mainRun())
}

// mainRun is the whole of main's logic, split out so the testscript
// suite in script_test.go can register it as a subcommand and drive
// the real binary's behavior without a separate build step.
func mainRun() int {
	flag.Parse()
	status, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsh:", err)
	}
	return status
}

func run() (int, error) {
	interactive := *command == "" && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd()))

	opts := []interp.Option{
		interp.WithEnviron(expand.OS()),
		interp.WithStdIO(os.Stdin, os.Stdout, os.Stderr),
		interp.WithHistorySize(*historySize),
	}
	if interactive {
		opts = append(opts, interp.Interactive())
	}

	r, err := interp.New(opts...)
	if err != nil {
		return 1, err
	}
	r.Start()
	defer r.Close()

	switch {
	case *command != "":
		return shell.RunScript(r, strings.NewReader(*command))
	case flag.NArg() > 0:
		return runFiles(r, flag.Args())
	case interactive:
		return shell.New(r).Run()
	default:
		return shell.RunScript(r, os.Stdin)
	}
}

func runFiles(r *interp.Runner, paths []string) (int, error) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return 1, err
		}
		status, err := shell.RunScript(r, f)
		f.Close()
		if err != nil {
			return status, err
		}
	}
	return r.LastStatus, nil
}
