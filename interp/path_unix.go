//go:build unix

package interp

import (
	"errors"
	"os"
	"strings"

	"jsh.dev/jsh/expand"
)

// ErrNotFound is returned by LookPath when name cannot be resolved to
// an executable file.
var ErrNotFound = errors.New("command not found")

// LookPath resolves name to an executable path using env's PATH
// variable: a name containing a slash is used as-is (after checking
// it's an executable regular file); otherwise each PATH directory is
// tried in order. There is no PATHEXT handling and no shebang/script
// fallback — this shell execs real binaries only.
func LookPath(env expand.Environ, name string) (string, error) {
	if strings.Contains(name, "/") {
		if isExecutableFile(name) {
			return name, nil
		}
		return "", ErrNotFound
	}
	pathVar, _ := env.Get("PATH")
	for _, dir := range strings.Split(pathVar, ":") {
		if dir == "" {
			dir = "."
		}
		candidate := dir + "/" + name
		if isExecutableFile(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
