//go:build unix

package interp

import (
	"os/exec"
	"syscall"
)

// prepareCommand joins cmd to the process group pgid. A pgid of 0
// makes the new process a group leader in its own right — used for a
// pipeline's first segment, whose pid then becomes pgid for every
// later segment. The kernel applies Setpgid to the child before exec,
// so there is no window where the child is running outside the
// intended group for another thread to observe.
func prepareCommand(cmd *exec.Cmd, pgid int) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: pgid}
}

// signalGroup delivers sig to every process in the group led by pgid,
// used by `fg`/`bg` to resume a stopped job.
func signalGroup(pgid int, sig syscall.Signal) error {
	return syscall.Kill(-pgid, sig)
}
