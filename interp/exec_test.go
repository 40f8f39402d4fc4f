//go:build unix

package interp

import (
	"bytes"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"

	"jsh.dev/jsh/expand"
	"jsh.dev/jsh/syntax"
)

func newExecRunner(c *qt.C) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r, err := New(
		WithEnviron(expand.ListEnviron("PATH=/bin:/usr/bin")),
		WithStdIO(bytes.NewReader(nil), &stdout, &stderr),
	)
	c.Assert(err, qt.IsNil)
	r.Start()
	c.Cleanup(r.Close)
	return r, &stdout, &stderr
}

func TestExecSimplePipeline(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newExecRunner(c)

	pl := &syntax.Pipeline{Segments: []syntax.Segment{
		{Name: "echo", Args: []string{"echo", "hello", "world"}},
		{Name: "tr", Args: []string{"tr", "a-z", "A-Z"}},
	}}
	c.Assert(r.Exec(pl, false, "echo hello world | tr a-z A-Z"), qt.IsNil)
	c.Assert(stdout.String(), qt.Equals, "HELLO WORLD\n")
}

func TestExecRedirection(t *testing.T) {
	c := qt.New(t)
	r, _, _ := newExecRunner(c)
	out := t.TempDir() + "/out.txt"

	pl := &syntax.Pipeline{Segments: []syntax.Segment{
		{Name: "echo", Args: []string{"echo", "redirected"}, Stdout: out, Mode: syntax.Truncate},
	}}
	c.Assert(r.Exec(pl, false, "echo redirected > out.txt"), qt.IsNil)

	data, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "redirected\n")
}

func TestExecAppendRedirection(t *testing.T) {
	c := qt.New(t)
	r, _, _ := newExecRunner(c)
	out := t.TempDir() + "/out.txt"
	c.Assert(os.WriteFile(out, []byte("first\n"), 0o644), qt.IsNil)

	pl := &syntax.Pipeline{Segments: []syntax.Segment{
		{Name: "echo", Args: []string{"echo", "second"}, Stdout: out, Mode: syntax.Append},
	}}
	c.Assert(r.Exec(pl, false, "echo second >> out.txt"), qt.IsNil)

	data, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "first\nsecond\n")
}

func TestExecCommandNotFound(t *testing.T) {
	c := qt.New(t)
	var stdout, stderr bytes.Buffer
	r, err := New(
		WithEnviron(expand.ListEnviron("PATH="+t.TempDir())),
		WithStdIO(bytes.NewReader(nil), &stdout, &stderr),
	)
	c.Assert(err, qt.IsNil)
	r.Start()
	c.Cleanup(r.Close)

	pl := &syntax.Pipeline{Segments: []syntax.Segment{
		{Name: "nope", Args: []string{"nope"}},
	}}
	err = r.Exec(pl, false, "nope")
	c.Assert(err, qt.Equals, ErrNotFound)
	c.Assert(stderr.String(), qt.Equals, "nope: command not found\n")
}

func TestExecBackgroundReportsJob(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newExecRunner(c)

	pl := &syntax.Pipeline{Segments: []syntax.Segment{
		{Name: "sleep", Args: []string{"sleep", "0.2"}},
	}}
	c.Assert(r.Exec(pl, true, "sleep 0.2 &"), qt.IsNil)
	c.Assert(r.Jobs.List(), qt.HasLen, 1)
	c.Assert(stdout.String(), qt.Matches, `\[1\] \d+\n`)
}
