package interp

import "jsh.dev/jsh/syntax"

// Run is the shell's single entry point for a parsed command line: a
// lone built-in runs in-process (built-ins never fork), anything else
// launches as an external pipeline via Exec. It reports whether the
// built-in requested the shell exit (only `exit` does).
func (r *Runner) Run(pl *syntax.Pipeline, background bool, rawLine string) (exit bool, err error) {
	if len(pl.Segments) == 1 {
		if status, exit, ok := r.RunBuiltin(pl.Segments[0]); ok {
			r.LastStatus = status
			return exit, nil
		}
	}
	return false, r.Exec(pl, background, rawLine)
}
