package interp

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"jsh.dev/jsh/builtin"
	"jsh.dev/jsh/syntax"
)

// Builtin is a shell command that runs in-process rather than as a
// forked child: cd, pwd, exit, history, jobs, fg, bg, alias, unalias,
// set, and the demo commands schedule and vfs.
type Builtin func(r *Runner, args []string) (status int, exit bool)

// builtins is the dispatch table. A name not present here is looked up
// on PATH and run as an external pipeline segment instead.
var builtins = map[string]Builtin{
	"cd":       biCd,
	"pwd":      biPwd,
	"exit":     biExit,
	"history":  biHistory,
	"jobs":     biJobs,
	"fg":       biFg,
	"bg":       biBg,
	"alias":    biAlias,
	"unalias":  biUnalias,
	"set":      biSet,
	"schedule": biSchedule,
	"vfs":      biVfs,
}

// RunBuiltin dispatches a single, unpiped segment to its built-in
// handler. It returns ok=false if name isn't a built-in at all.
func (r *Runner) RunBuiltin(seg syntax.Segment) (status int, exit bool, ok bool) {
	fn, ok := builtins[seg.Name]
	if !ok {
		return 0, false, false
	}
	status, exit = fn(r, seg.Args[1:])
	return status, exit, true
}

func biCd(r *Runner, args []string) (int, bool) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else if home, ok := r.Env.Get("HOME"); ok {
		dir = home
	}
	if dir == "" {
		fmt.Fprintln(r.Stderr, "cd: HOME not set")
		return 1, false
	}
	if !strings.HasPrefix(dir, "/") {
		dir = r.Dir + "/" + dir
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(r.Stderr, "cd: %s: not a directory\n", dir)
		return 1, false
	}
	r.Dir = dir
	return 0, false
}

func biPwd(r *Runner, _ []string) (int, bool) {
	fmt.Fprintln(r.Stdout, r.Dir)
	return 0, false
}

func biExit(r *Runner, args []string) (int, bool) {
	status := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			status = n
		}
	}
	return status, true
}

func biHistory(r *Runner, _ []string) (int, bool) {
	for i, line := range r.History.Entries() {
		fmt.Fprintf(r.Stdout, "%5d  %s\n", i+1, line)
	}
	return 0, false
}

func biJobs(r *Runner, _ []string) (int, bool) {
	for _, j := range r.Jobs.List() {
		fmt.Fprintf(r.Stdout, "[%d] %s %s\n", j.ID, j.State, j.Command)
	}
	return 0, false
}

func parseJobID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("job id required")
	}
	spec := strings.TrimPrefix(args[0], "%")
	return strconv.Atoi(spec)
}

func biFg(r *Runner, args []string) (int, bool) {
	id, err := parseJobID(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "fg: %v\n", err)
		return 1, false
	}
	job, ok := r.Jobs.ByID(id)
	if !ok {
		fmt.Fprintf(r.Stderr, "fg: %d: no such job\n", id)
		return 1, false
	}
	if err := signalGroup(job.Pgid, syscall.SIGCONT); err != nil {
		fmt.Fprintf(r.Stderr, "fg: %v\n", err)
		return 1, false
	}
	r.Jobs.SetState(job.ID, Running)
	fmt.Fprintln(r.Stdout, job.Command)

	if r.Terminal != nil {
		r.Terminal.SetForeground(job.Pgid)
	}
	stopped := r.Reaper.WaitForeground(job.Pid)
	if r.Terminal != nil {
		r.Terminal.SetForeground(r.ShellPgid)
	}
	if stopped {
		r.Jobs.SetState(job.ID, Stopped)
		fmt.Fprintf(r.Stdout, "\n[%d] Stopped\n", job.ID)
	}
	return 0, false
}

func biBg(r *Runner, args []string) (int, bool) {
	id, err := parseJobID(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "bg: %v\n", err)
		return 1, false
	}
	job, ok := r.Jobs.ByID(id)
	if !ok {
		fmt.Fprintf(r.Stderr, "bg: %d: no such job\n", id)
		return 1, false
	}
	if err := signalGroup(job.Pgid, syscall.SIGCONT); err != nil {
		fmt.Fprintf(r.Stderr, "bg: %v\n", err)
		return 1, false
	}
	r.Jobs.SetState(job.ID, Running)
	fmt.Fprintf(r.Stdout, "[%d] %s &\n", job.ID, job.Command)
	return 0, false
}

func biAlias(r *Runner, args []string) (int, bool) {
	if len(args) == 0 {
		for _, name := range r.Aliases.Names() {
			value, _ := r.Aliases.Get(name)
			fmt.Fprintf(r.Stdout, "alias %s=%q\n", name, value)
		}
		return 0, false
	}
	name, value, hasEq := strings.Cut(args[0], "=")
	if !hasEq {
		value, ok := r.Aliases.Get(name)
		if !ok {
			fmt.Fprintf(r.Stderr, "alias: %s: not found\n", name)
			return 1, false
		}
		fmt.Fprintf(r.Stdout, "alias %s=%q\n", name, value)
		return 0, false
	}
	r.Aliases.Set(name, value)
	return 0, false
}

func biUnalias(r *Runner, args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(r.Stderr, "unalias: usage: unalias name")
		return 1, false
	}
	r.Aliases.Remove(args[0])
	return 0, false
}

func biSet(r *Runner, args []string) (int, bool) {
	if len(args) == 0 {
		r.Env.Each(func(name, value string) bool {
			fmt.Fprintf(r.Stdout, "%s=%s\n", name, value)
			return true
		})
		return 0, false
	}
	name, value, ok := strings.Cut(args[0], "=")
	if !ok {
		fmt.Fprintln(r.Stderr, "set: usage: set NAME=VALUE")
		return 1, false
	}
	if err := r.Env.Set(name, value); err != nil {
		fmt.Fprintf(r.Stderr, "set: %v\n", err)
		return 1, false
	}
	return 0, false
}

func biSchedule(r *Runner, args []string) (int, bool) {
	if err := builtin.Schedule(r.Stdout, args); err != nil {
		fmt.Fprintf(r.Stderr, "schedule: %v\n", err)
		return 1, false
	}
	return 0, false
}

func biVfs(r *Runner, args []string) (int, bool) {
	r.VFS.Dispatch(r.Stdout, args)
	return 0, false
}
