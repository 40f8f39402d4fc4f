//go:build unix

package interp

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"jsh.dev/jsh/syntax"
)

// Exec launches pl's segments as one pipeline in a single new process
// group. Foreground pipelines are given the terminal for the duration
// of the run and waited on; background pipelines are recorded in the
// job table and control returns immediately.
//
// A segment whose program cannot be resolved aborts the whole pipeline
// launch: a traditional "command not found" contract is a child-side
// exit status of 127, but Go cannot fork a bare process and decide what
// to exec after the fact, so the lookup happens here in the parent
// before any process is started. Reporting the error and abandoning
// the pipeline preserves the user-visible message without a half-wired
// set of pipes left waiting on a process that was never going to
// exist.
func (r *Runner) Exec(pl *syntax.Pipeline, background bool, rawLine string) error {
	n := len(pl.Segments)
	cmds := make([]*exec.Cmd, 0, n)
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	paths := make([]string, n)
	for i, seg := range pl.Segments {
		path, err := LookPath(r.Env, seg.Name)
		if err != nil {
			fmt.Fprintf(r.Stderr, "%s: command not found\n", seg.Name)
			return err
		}
		paths[i] = path
	}

	var pgid int
	var stdin *os.File // read end feeding the segment about to start; nil for the first

	for i, seg := range pl.Segments {
		hasNext := i < n-1

		cmd := &exec.Cmd{Path: paths[i], Args: seg.Args, Dir: r.Dir, Env: r.environSlice()}

		var nextStdin *os.File // read end handed to the following segment
		var stdout *os.File    // write end this segment's stdout feeds, if piping onward
		if hasNext {
			pr, pw, err := os.Pipe()
			if err != nil {
				return fmt.Errorf("pipe: %w", err)
			}
			closers = append(closers, pr, pw)
			stdout = pw
			nextStdin = pr
		}

		switch {
		case seg.Stdin != "":
			f, err := os.Open(seg.Stdin)
			if err != nil {
				fmt.Fprintf(r.Stderr, "%s: %v\n", seg.Stdin, err)
				return err
			}
			closers = append(closers, f)
			cmd.Stdin = f
		case stdin != nil:
			cmd.Stdin = stdin
		default:
			cmd.Stdin = r.Stdin
		}

		switch {
		case seg.Stdout != "":
			flags := os.O_WRONLY | os.O_CREATE
			if seg.Mode == syntax.Append {
				flags |= os.O_APPEND
			} else {
				flags |= os.O_TRUNC
			}
			f, err := os.OpenFile(seg.Stdout, flags, 0o644)
			if err != nil {
				fmt.Fprintf(r.Stderr, "%s: %v\n", seg.Stdout, err)
				return err
			}
			closers = append(closers, f)
			cmd.Stdout = f
		case hasNext:
			cmd.Stdout = stdout
		default:
			cmd.Stdout = r.Stdout
		}
		cmd.Stderr = r.Stderr

		prepareCommand(cmd, pgid)
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(r.Stderr, "%s: %v\n", seg.Name, err)
			return err
		}
		if pgid == 0 {
			pgid = cmd.Process.Pid
		}
		cmds = append(cmds, cmd)
		// The child holds its own copies of the pipe ends; the parent's
		// copies must go now so the next segment sees EOF.
		if stdout != nil {
			stdout.Close()
		}
		if stdin != nil {
			stdin.Close()
		}
		stdin = nextStdin
	}

	return r.waitPipeline(cmds, pgid, background, rawLine)
}

func (r *Runner) waitPipeline(cmds []*exec.Cmd, pgid int, background bool, rawLine string) error {
	last := cmds[len(cmds)-1]

	if background {
		job := r.Jobs.Add(pgid, last.Process.Pid, rawLine, Running)
		fmt.Fprintf(r.Stdout, "[%d] %d\n", job.ID, pgid)
		return nil
	}

	if r.Terminal != nil {
		if err := r.Terminal.SetForeground(pgid); err != nil {
			fmt.Fprintf(r.Stderr, "tcsetpgrp: %v\n", err)
		}
	}

	stopped := r.Reaper.WaitForeground(last.Process.Pid)
	if !stopped {
		// The reaper already collected the exit status; Wait only
		// finishes copying output to writers that are not *os.File.
		last.Wait()
	}

	if r.Terminal != nil {
		if err := r.Terminal.SetForeground(r.ShellPgid); err != nil {
			fmt.Fprintf(r.Stderr, "tcsetpgrp: %v\n", err)
		}
	}

	if stopped {
		job := r.Jobs.Add(pgid, last.Process.Pid, rawLine, Stopped)
		fmt.Fprintf(r.Stdout, "\n[%d] Stopped\n", job.ID)
	}
	return nil
}
