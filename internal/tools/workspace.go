package tools

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideWorkspace is wrapped by every containment failure.
var ErrOutsideWorkspace = errors.New("path escapes the workspace root")

// Workspace confines tool filesystem access to one root directory. The
// containment check is purely lexical: it rejects escaping paths whether or
// not the target exists.
type Workspace struct {
	root string
}

// NewWorkspace creates a workspace rooted at dir (made absolute and cleaned).
func NewWorkspace(dir string) (*Workspace, error) {
	if dir == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Workspace{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Resolve turns a tool path argument into an absolute path inside the
// workspace. Relative paths are joined to the root. A cleaned result outside
// the root, via ".." traversal or an absolute path elsewhere, fails with
// ErrOutsideWorkspace.
func (w *Workspace) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(w.root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(w.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w (%s)", path, ErrOutsideWorkspace, w.root)
	}
	return abs, nil
}
