package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	customErr "github.com/mini-maxit/lchelper/pkg/errors"
)

// SearchPath is the list of directories used to resolve the tool executable.
// It is built once at start-up instead of mutating the process PATH.
type SearchPath struct {
	dirs []string
}

// NewSearchPath splits a PATH-style list and appends extraDirs that are not already present.
func NewSearchPath(pathList string, extraDirs ...string) SearchPath {
	sp := SearchPath{}
	for _, dir := range filepath.SplitList(pathList) {
		sp = sp.Augment(dir)
	}
	return sp.Augment(extraDirs...)
}

// Augment returns a copy with the missing dirs appended. Applying it twice has no further effect.
func (sp SearchPath) Augment(dirs ...string) SearchPath {
	out := SearchPath{dirs: append([]string(nil), sp.dirs...)}
	for _, dir := range dirs {
		if dir == "" || out.contains(dir) {
			continue
		}
		out.dirs = append(out.dirs, dir)
	}
	return out
}

func (sp SearchPath) contains(dir string) bool {
	clean := filepath.Clean(dir)
	for _, d := range sp.dirs {
		if filepath.Clean(d) == clean {
			return true
		}
	}
	return false
}

func (sp SearchPath) Dirs() []string {
	return append([]string(nil), sp.dirs...)
}

func (sp SearchPath) String() string {
	return strings.Join(sp.dirs, string(os.PathListSeparator))
}

// Environ returns env with its PATH entry replaced by the search path.
func (sp SearchPath) Environ(env []string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(strings.ToUpper(kv), "PATH=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PATH="+sp.String())
}

// LookPath resolves name like exec.LookPath but against the search path directories.
func (sp SearchPath) LookPath(name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", wrapLookPathError(name, err)
		}
		return path, nil
	}

	for _, dir := range sp.dirs {
		path, err := exec.LookPath(filepath.Join(dir, name))
		if err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s not found in %s", customErr.ErrToolMissing, name, sp)
}

func wrapLookPathError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", customErr.ErrToolMissing, name, err)
	}
	return fmt.Errorf("%w: %s: %v", customErr.ErrLaunchFailure, name, err)
}
