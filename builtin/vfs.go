package builtin

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// vfsFile is one entry in the toy in-memory filesystem, grounded on
// the C original's VFS_File: a name, its content, and creation/
// modification timestamps.
type vfsFile struct {
	name     string
	data     string
	created  time.Time
	modified time.Time
}

// VFS is an in-memory filesystem scoped to one shell process's
// lifetime, exposed through the `vfs` built-in's create/write/ls/cat/rm
// subcommands.
type VFS struct {
	mu    sync.Mutex
	files []vfsFile
}

// NewVFS returns an empty store.
func NewVFS() *VFS {
	return &VFS{}
}

func (v *VFS) find(name string) int {
	for i := range v.files {
		if v.files[i].name == name {
			return i
		}
	}
	return -1
}

// Create adds an empty file, failing if one by that name exists.
func (v *VFS) Create(w io.Writer, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.find(name) >= 0 {
		fmt.Fprintf(w, "vfs: file %q already exists\n", name)
		return
	}
	now := time.Now()
	v.files = append(v.files, vfsFile{name: name, created: now, modified: now})
	fmt.Fprintf(w, "vfs: created file %q\n", name)
}

// Write overwrites a file's content, failing if it doesn't exist.
func (v *VFS) Write(w io.Writer, name, data string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.find(name)
	if i < 0 {
		fmt.Fprintf(w, "vfs: no such file %q\n", name)
		return
	}
	v.files[i].data = data
	v.files[i].modified = time.Now()
	fmt.Fprintf(w, "vfs: wrote to %q (%d bytes)\n", name, len(data))
}

// Cat prints a file's content, failing if it doesn't exist.
func (v *VFS) Cat(w io.Writer, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.find(name)
	if i < 0 {
		fmt.Fprintf(w, "vfs: no such file %q\n", name)
		return
	}
	fmt.Fprintln(w, v.files[i].data)
}

// Ls lists every file with its size and modification time.
func (v *VFS) Ls(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.files) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintf(w, "%-20s %-8s %-12s %s\n", "Name", "Size", "Modified", "Created")
	for _, f := range v.files {
		fmt.Fprintf(w, "%-20s %-8d %-12s %s\n",
			f.name, len(f.data), f.modified.Format("Jan 02 15:04"), f.created.Format("Jan 02 15:04"))
	}
}

// Rm removes a file, failing if it doesn't exist.
func (v *VFS) Rm(w io.Writer, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.find(name)
	if i < 0 {
		fmt.Fprintf(w, "vfs: no such file %q\n", name)
		return
	}
	v.files = append(v.files[:i], v.files[i+1:]...)
	fmt.Fprintf(w, "vfs: removed %q\n", name)
}

// Dispatch handles `vfs <subcommand> [args...]`.
func (v *VFS) Dispatch(w io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(w, "vfs: missing subcommand (create/write/ls/cat/rm)")
		return
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(w, "vfs: usage: vfs create <name>")
			return
		}
		v.Create(w, args[1])
	case "write":
		if len(args) < 2 {
			fmt.Fprintln(w, "vfs: usage: vfs write <name> [data...]")
			return
		}
		v.Write(w, args[1], strings.Join(args[2:], " "))
	case "ls":
		v.Ls(w)
	case "cat":
		if len(args) < 2 {
			fmt.Fprintln(w, "vfs: usage: vfs cat <name>")
			return
		}
		v.Cat(w, args[1])
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(w, "vfs: usage: vfs rm <name>")
			return
		}
		v.Rm(w, args[1])
	default:
		fmt.Fprintln(w, "vfs: unknown command. Use: create/write/ls/cat/rm")
	}
}
