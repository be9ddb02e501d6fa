// Package index is the staging area: a path → blob-OID map persisted
// as a single JSON file inside the repository directory. See DESIGN.md
// for why JSON rather than a third-party serialization library.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/worktree"
)

const fileName = "index"

// Index is a path → blob-OID staging map.
type Index map[string]plumbing.Hash

func path(repoDir string) string {
	return filepath.Join(repoDir, fileName)
}

// Load reads the index from disk, returning an empty Index if the file
// is absent.
func Load(repoDir string) (Index, error) {
	data, err := os.ReadFile(path(repoDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Index{}, nil
		}
		return nil, fmt.Errorf("agit: read index: %w", err)
	}
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("agit: decode index: %w", err)
	}
	idx := make(Index, len(raw))
	for p, hex := range raw {
		oid, err := plumbing.NewHashEx(hex)
		if err != nil {
			return nil, fmt.Errorf("agit: index entry %s: %w", p, err)
		}
		idx[p] = oid
	}
	return idx, nil
}

// Save persists idx to disk, atomically.
func Save(repoDir string, idx Index) error {
	raw := make(map[string]string, len(idx))
	for p, oid := range idx {
		raw[p] = oid.String()
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("agit: encode index: %w", err)
	}
	dest := path(repoDir)
	tmp, err := os.CreateTemp(repoDir, ".tmp-index-*")
	if err != nil {
		return fmt.Errorf("agit: stage index: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("agit: write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("agit: close index: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("agit: commit index: %w", err)
	}
	return nil
}

// With loads the index, hands it to fn, and re-persists it only if fn
// returns nil.
func With(repoDir string, fn func(Index) (Index, error)) error {
	idx, err := Load(repoDir)
	if err != nil {
		return err
	}
	updated, err := fn(idx)
	if err != nil {
		return err
	}
	return Save(repoDir, updated)
}

// Add stages paths into idx: files are hashed directly, directories are
// walked recursively for every non-ignored regular file within.
func Add(store *odb.Store, idx Index, paths []string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("agit: stat %s: %w", p, err)
		}
		if info.IsDir() {
			sub, err := worktree.GetWorkingTree(store, p)
			if err != nil {
				return err
			}
			for rel, oid := range sub {
				idx[filepath.ToSlash(filepath.Join(p, rel))] = oid
			}
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("agit: read %s: %w", p, err)
		}
		oid, err := store.PutBlob(data)
		if err != nil {
			return err
		}
		idx[filepath.ToSlash(p)] = oid
	}
	return nil
}

// GetTree materializes idx into a nested tree of objects, identical in
// shape to worktree.WriteTree but sourced from the index map rather
// than the filesystem, and returns the root OID.
func GetTree(store *odb.Store, idx Index) (plumbing.Hash, error) {
	root := &pathNode{children: map[string]*pathNode{}}
	for p, oid := range idx {
		root.insert(splitPath(p), oid)
	}
	return root.write(store)
}

type pathNode struct {
	blob     *plumbing.Hash
	children map[string]*pathNode
}

// splitPath breaks a slash-separated index key into path components.
func splitPath(p string) []string {
	p = filepath.ToSlash(p)
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[start:i])
			start = i + 1
		}
	}
	return append(out, p[start:])
}

func (n *pathNode) insert(parts []string, oid plumbing.Hash) {
	if len(parts) == 1 {
		if n.children[parts[0]] == nil {
			n.children[parts[0]] = &pathNode{}
		}
		h := oid
		n.children[parts[0]].blob = &h
		return
	}
	child := n.children[parts[0]]
	if child == nil {
		child = &pathNode{children: map[string]*pathNode{}}
		n.children[parts[0]] = child
	}
	if child.children == nil {
		child.children = map[string]*pathNode{}
	}
	child.insert(parts[1:], oid)
}

func (n *pathNode) write(store *odb.Store) (plumbing.Hash, error) {
	var entries []object.Entry
	for name, child := range n.children {
		if child.blob != nil {
			entries = append(entries, object.Entry{Name: name, Kind: object.EntryBlob, OID: *child.blob})
			continue
		}
		oid, err := child.write(store)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries = append(entries, object.Entry{Name: name, Kind: object.EntryTree, OID: oid})
	}
	tree, err := object.NewTree(entries)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return store.PutTree(tree)
}
