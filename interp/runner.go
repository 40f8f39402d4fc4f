// Package interp implements job control and pipeline execution: the
// process groups, terminal handoff, and asynchronous reaping a
// foreground/background pipeline needs, plus the shell's built-in
// commands.
package interp

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"jsh.dev/jsh/builtin"
	"jsh.dev/jsh/expand"
	"jsh.dev/jsh/history"
)

// Runner holds everything a running shell needs to launch pipelines
// and track jobs. Construct one with New and a list of Options, in the
// same functional-options style as other shell interpreters in this
// ecosystem.
type Runner struct {
	Env     expand.WriteEnviron
	Dir     string
	Aliases *expand.AliasTable
	History *history.List

	Jobs   *JobTable
	Reaper *Reaper
	VFS    *builtin.VFS

	// Terminal is non-nil only when the shell owns a controlling
	// terminal and is running interactively; job control (terminal
	// handoff, SIGTTIN/SIGTTOU/SIGTSTP suppression) is skipped
	// entirely otherwise.
	Terminal  *Terminal
	ShellPgid int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	LastStatus int
}

// Option configures a Runner at construction time.
type Option func(*Runner) error

// shellIdentifier is the fixed value $SHELL is set to at startup, the
// same way a real login shell advertises itself.
const shellIdentifier = "/bin/jsh"

// New builds a Runner with the given options applied in order.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		Env:     expand.OS(),
		Aliases: expand.NewAliasTable(),
		History: history.New(500),
		Jobs:    NewJobTable(),
		VFS:     builtin.NewVFS(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	if wd, err := os.Getwd(); err == nil {
		r.Dir = wd
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if err := r.Env.Set("SHELL", shellIdentifier); err != nil {
		return nil, fmt.Errorf("set SHELL: %w", err)
	}
	r.Reaper = NewReaper(r.Jobs)
	return r, nil
}

// WithEnviron sets the variable environment a Runner exposes to
// expansion and to spawned children.
func WithEnviron(env expand.WriteEnviron) Option {
	return func(r *Runner) error {
		r.Env = env
		return nil
	}
}

// WithStdIO sets the three standard streams.
func WithStdIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) error {
		r.Stdin, r.Stdout, r.Stderr = stdin, stdout, stderr
		return nil
	}
}

// WithHistorySize sets the bounded history's capacity.
func WithHistorySize(n int) Option {
	return func(r *Runner) error {
		r.History = history.New(n)
		return nil
	}
}

// Interactive takes ownership of the controlling terminal and enables
// full job control: the shell joins its own process group, becomes the
// terminal's foreground group, and ignores the signals a background
// process would otherwise receive for touching the terminal.
func Interactive() Option {
	return func(r *Runner) error {
		term, err := OpenControllingTerminal()
		if err != nil {
			return fmt.Errorf("acquire controlling terminal: %w", err)
		}
		pgid := os.Getpid()
		if err := syscall.Setpgid(0, pgid); err != nil {
			return fmt.Errorf("setpgid: %w", err)
		}
		r.Terminal = term
		r.ShellPgid = pgid
		IgnoreJobControlSignals()
		return term.SetForeground(pgid)
	}
}

// Start begins the asynchronous reaper. Callers must eventually call
// Close.
func (r *Runner) Start() {
	go r.Reaper.Run()
}

// Close stops the reaper and releases the controlling terminal, if
// any.
func (r *Runner) Close() {
	r.Reaper.Stop()
	if r.Terminal != nil {
		r.Terminal.Close()
	}
}

func (r *Runner) environSlice() []string {
	var out []string
	r.Env.Each(func(name, value string) bool {
		out = append(out, name+"="+value)
		return true
	})
	return out
}
