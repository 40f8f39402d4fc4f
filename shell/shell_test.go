//go:build unix

package shell

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"jsh.dev/jsh/expand"
	"jsh.dev/jsh/interp"
)

func newTestRunner(c *qt.C) (*interp.Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r, err := interp.New(
		interp.WithEnviron(expand.ListEnviron("PATH=/bin:/usr/bin")),
		interp.WithStdIO(bytes.NewReader(nil), &stdout, &stderr),
	)
	c.Assert(err, qt.IsNil)
	r.Start()
	c.Cleanup(r.Close)
	return r, &stdout, &stderr
}

func TestRunScriptExecutesCommandsAndStopsAtExit(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newTestRunner(c)

	src := strings.NewReader("echo one\necho two\nexit 5\necho three\n")
	status, err := RunScript(r, src)
	c.Assert(err, qt.IsNil)
	c.Assert(status, qt.Equals, 5)
	c.Assert(stdout.String(), qt.Equals, "one\ntwo\n")
}

func TestRunScriptReportsParseErrorsAndContinues(t *testing.T) {
	c := qt.New(t)
	r, stdout, stderr := newTestRunner(c)

	src := strings.NewReader("| bad\necho ok\n")
	_, err := RunScript(r, src)
	c.Assert(err, qt.IsNil)
	c.Assert(stdout.String(), qt.Equals, "ok\n")
	c.Assert(stderr.String(), qt.Not(qt.Equals), "")
}

func TestRunScriptSkipsBlankLines(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newTestRunner(c)

	src := strings.NewReader("\n   \necho hi\n")
	_, err := RunScript(r, src)
	c.Assert(err, qt.IsNil)
	c.Assert(stdout.String(), qt.Equals, "hi\n")
	c.Assert(r.History.Entries(), qt.DeepEquals, []string{"echo hi"})
}

func TestRunScriptExpandsAliasesAndVariables(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newTestRunner(c)
	r.Aliases.Set("say", "echo")
	c.Assert(r.Env.Set("NAME", "world"), qt.IsNil)

	src := strings.NewReader("say hello $NAME\n")
	_, err := RunScript(r, src)
	c.Assert(err, qt.IsNil)
	c.Assert(stdout.String(), qt.Equals, "hello world\n")
}

func TestREPLRunPromptShowsWorkingDirectory(t *testing.T) {
	c := qt.New(t)
	r, stdout, _ := newTestRunner(c)
	r.Dir = "/tmp/jsh-test"
	r.Stdin = strings.NewReader("exit\n")

	status, err := New(r).Run()
	c.Assert(err, qt.IsNil)
	c.Assert(status, qt.Equals, 0)
	c.Assert(stdout.String(), qt.Equals, "[my_shell:/tmp/jsh-test]$ ")
}
