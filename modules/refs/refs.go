// Package refs is the Reference Store: a filesystem-backed mapping from
// ReferenceName to either a Hash or another ReferenceName, rooted at a
// single repository directory. No packed-refs compaction format; the
// only remote-tracking plumbing is storing whatever refs/remotes/
// entries the replication layer writes.
package refs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agit-vcs/agit/modules/plumbing"
)

const maxResolveRecursion = 1024

// Store reads and writes references under a single repository root.
type Store struct {
	root string // the repository directory itself (HEAD lives at root/HEAD)
}

// Open returns a Store rooted at repoDir.
func Open(repoDir string) *Store {
	return &Store{root: repoDir}
}

func (s *Store) path(name plumbing.ReferenceName) string {
	return filepath.Join(s.root, filepath.FromSlash(name.String()))
}

// Get reads the reference named name without following symbolic chains.
func (s *Store) Get(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, plumbing.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("agit: read reference %s: %w", name, err)
	}
	line := strings.TrimSpace(string(data))
	return plumbing.NewReferenceFromString(name, line), nil
}

// Resolve follows Get repeatedly until it lands on a HashReference,
// bounded by maxResolveRecursion to guard against a reference cycle.
func (s *Store) Resolve(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	for range maxResolveRecursion {
		ref, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if ref.Type() != plumbing.SymbolicReference {
			return ref, nil
		}
		name = ref.Target()
	}
	return nil, fmt.Errorf("agit: reference %s: too many levels of symbolic indirection", name)
}

// Update writes ref to disk atomically (temp file, then rename).
func (s *Store) Update(ref *plumbing.Reference) error {
	dest := s.path(ref.Name())
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("agit: create reference directory: %w", err)
	}
	var content string
	switch ref.Type() {
	case plumbing.SymbolicReference:
		content = fmt.Sprintf("ref: %s\n", ref.Target())
	case plumbing.HashReference:
		content = ref.Hash().String() + "\n"
	default:
		return fmt.Errorf("agit: cannot write reference of unknown type")
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-ref-*")
	if err != nil {
		return fmt.Errorf("agit: stage reference: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("agit: write reference: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("agit: close reference: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("agit: commit reference: %w", err)
	}
	return nil
}

// Delete removes the reference named name. Deleting an absent reference
// is not an error.
func (s *Store) Delete(name plumbing.ReferenceName) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("agit: delete reference %s: %w", name, err)
	}
	return nil
}

// IterRefs walks every reference under the given prefix (e.g.
// plumbing.ReferencePrefix for all of refs/) and calls fn with each,
// unresolved (symbolic references are reported as-is).
func (s *Store) IterRefs(prefix string, fn func(*plumbing.Reference) error) error {
	base := filepath.Join(s.root, filepath.FromSlash(prefix))
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := plumbing.ReferenceName(filepath.ToSlash(rel))
		ref, err := s.Get(name)
		if err != nil {
			return err
		}
		return fn(ref)
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
