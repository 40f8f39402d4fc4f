//go:build unix

package interp

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// Terminal wraps the controlling terminal's file descriptor so job
// control can hand foreground ownership between the shell and the
// pipeline it launches. Go's os/exec has no notion of
// tcsetpgrp/tcgetpgrp, so these go through golang.org/x/sys/unix's
// ioctl wrappers directly on TIOCSPGRP/TIOCGPGRP — the idiomatic Go
// substitute for a raw syscall.RawSyscall(SYS_IOCTL, ...) call.
type Terminal struct {
	f *os.File
}

// OpenControllingTerminal opens /dev/tty, the terminal controlling the
// calling process, for use as the job-control handoff point.
func OpenControllingTerminal() (*Terminal, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Terminal{f: f}, nil
}

// Foreground returns the terminal's current foreground process group.
func (t *Terminal) Foreground() (int, error) {
	return unix.IoctlGetInt(int(t.f.Fd()), unix.TIOCGPGRP)
}

// SetForeground makes pgid the terminal's foreground process group.
func (t *Terminal) SetForeground(pgid int) error {
	return unix.IoctlSetPointerInt(int(t.f.Fd()), unix.TIOCSPGRP, pgid)
}

// Close releases the terminal handle.
func (t *Terminal) Close() error { return t.f.Close() }

// IgnoreJobControlSignals makes the shell itself immune to the
// signals the kernel sends a background process that tries to read
// from or write to the controlling terminal, and to the interactive
// stop signal — the shell is never stopped by Ctrl-Z itself, only the
// foreground pipeline it hands the terminal to.
func IgnoreJobControlSignals() {
	signal.Ignore(syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGTSTP)
}
