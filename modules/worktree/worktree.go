// Package worktree is the Tree Codec & Working-Tree Adapter: it
// converts between a working directory on disk and the tree objects
// the object store holds, and materializes a tree back onto disk.
package worktree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// RepoDirName is the reserved directory every working-tree walk skips.
const RepoDirName = ".agit"

// ignored reports whether a directory entry name is the repository
// directory itself.
func ignored(name string) bool {
	return name == RepoDirName
}

// WriteTree snapshots dir into a tree object, recursing into
// subdirectories, and returns its OID.
func WriteTree(store *odb.Store, dir string) (plumbing.Hash, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("agit: read directory %s: %w", dir, err)
	}
	var out []object.Entry
	for _, e := range entries {
		if ignored(e.Name()) {
			continue
		}
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			oid, err := WriteTree(store, full)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			out = append(out, object.Entry{Name: e.Name(), Kind: object.EntryTree, OID: oid})
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("agit: read file %s: %w", full, err)
		}
		oid, err := store.PutBlob(data)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		out = append(out, object.Entry{Name: e.Name(), Kind: object.EntryBlob, OID: oid})
	}
	tree, err := object.NewTree(out)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return store.PutTree(tree)
}

// GetTree recursively flattens the tree named oid into a path → blob-OID
// map, paths prefixed by base.
func GetTree(store *odb.Store, oid plumbing.Hash, base string) (map[string]plumbing.Hash, error) {
	tree, err := store.GetTree(oid)
	if err != nil {
		return nil, err
	}
	out := make(map[string]plumbing.Hash)
	for _, e := range tree.Entries {
		if err := validatePathComponent(e.Name); err != nil {
			return nil, err
		}
		switch e.Kind {
		case object.EntryBlob:
			out[base+e.Name] = e.OID
		case object.EntryTree:
			sub, err := GetTree(store, e.OID, base+e.Name+"/")
			if err != nil {
				return nil, err
			}
			for p, h := range sub {
				out[p] = h
			}
		}
	}
	return out, nil
}

func validatePathComponent(name string) error {
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("agit: invalid path component %q in tree entry %q", part, name)
		}
	}
	return nil
}

// ReadTree empties dir then materializes every entry of the tree named
// oid onto disk.
func ReadTree(store *odb.Store, dir string, oid plumbing.Hash) error {
	if err := EmptyDirectory(dir); err != nil {
		return err
	}
	paths, err := GetTree(store, oid, "./")
	if err != nil {
		return err
	}
	// Sort for deterministic write order; not required for correctness
	// (parent dirs are created on demand) but keeps filesystem operations
	// reproducible.
	names := make([]string, 0, len(paths))
	for p := range paths {
		names = append(names, p)
	}
	sort.Strings(names)
	for _, p := range names {
		rel := strings.TrimPrefix(p, "./")
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("agit: create directory for %s: %w", rel, err)
		}
		data, err := store.GetBlob(paths[p])
		if err != nil {
			return err
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return fmt.Errorf("agit: write file %s: %w", rel, err)
		}
	}
	return nil
}

// EmptyDirectory removes every non-ignored regular file under dir,
// unconditionally, then best-effort removes directories left empty.
// Failures removing non-empty directories are tolerated and dropped.
func EmptyDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("agit: read directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if ignored(e.Name()) {
			continue
		}
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := EmptyDirectory(full); err != nil {
				return err
			}
			_ = os.Remove(full) // best-effort; non-empty dirs are tolerated
			continue
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("agit: remove file %s: %w", full, err)
		}
	}
	return nil
}

// GetWorkingTree walks dir and hashes every regular, non-ignored file as
// a blob, returning a path → blob-OID map. Store writes here must be
// idempotent, which odb.Store.HashObject already guarantees (it skips
// writing when the destination already exists).
func GetWorkingTree(store *odb.Store, dir string) (map[string]plumbing.Hash, error) {
	out := make(map[string]plumbing.Hash)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		oid, putErr := store.PutBlob(data)
		if putErr != nil {
			return putErr
		}
		out[filepath.ToSlash(rel)] = oid
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("agit: walk working tree: %w", err)
	}
	return out, nil
}
