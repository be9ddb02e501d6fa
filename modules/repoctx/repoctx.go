// Package repoctx holds the process-wide "current repository" binding
// that every store in this module can resolve through: a single
// globally observable path, switched for the duration of a block and
// restored on every exit path, success or panic. It is guarded by a
// mutex rather than threaded as a context value through every call in
// the tree, since exactly one process-wide binding is ever live.
package repoctx

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const dirName = ".agit"

var (
	mu      sync.Mutex
	current string
)

// Current returns the repository directory bound by the innermost
// active With call. Calling it outside of any With is a programming
// error and panics.
func Current() string {
	mu.Lock()
	defer mu.Unlock()
	if current == "" {
		panic("agit: repoctx.Current called with no repository bound")
	}
	return current
}

// IsBound reports whether a repository directory is currently bound,
// without panicking.
func IsBound() bool {
	mu.Lock()
	defer mu.Unlock()
	return current != ""
}

// With binds the repository rooted at workDir/.agit for the duration of
// fn, restoring whatever was bound before — even if fn panics or
// returns an error. Nested calls save and restore the previous value,
// so a caller can rebind to a peer directory and unwind cleanly.
func With(workDir string, fn func() error) error {
	dir := filepath.Join(workDir, dirName)
	mu.Lock()
	previous := current
	current = dir
	mu.Unlock()
	defer func() {
		mu.Lock()
		current = previous
		mu.Unlock()
	}()
	return fn()
}

// WithDir is like With but takes the repository directory itself
// (already including .agit), for callers that already resolved it.
func WithDir(repoDir string, fn func() error) error {
	mu.Lock()
	previous := current
	current = repoDir
	mu.Unlock()
	defer func() {
		mu.Lock()
		current = previous
		mu.Unlock()
	}()
	return fn()
}

// Init creates the on-disk skeleton (objects/ and refs/) for the
// repository directory bound by the innermost With.
func Init() error {
	dir := Current()
	if err := os.MkdirAll(filepath.Join(dir, "objects"), 0o755); err != nil {
		return fmt.Errorf("agit: init objects dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "refs"), 0o755); err != nil {
		return fmt.Errorf("agit: init refs dir: %w", err)
	}
	return nil
}
