package diffengine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// BlobDiffFunc loads the blobs named by from/to (either may be nil,
// meaning "empty side") and renders a textual hunk for path. Injected so
// callers can substitute an external diff tool.
type BlobDiffFunc func(from, to *plumbing.Hash, path string) ([]byte, error)

// DefaultBlobDiff renders a unified diff via go-difflib, labeling hunks
// with path the way `diff -u a/path b/path` would.
func DefaultBlobDiff(store *odb.Store) BlobDiffFunc {
	return func(from, to *plumbing.Hash, path string) ([]byte, error) {
		fromText, err := loadOrEmpty(store, from)
		if err != nil {
			return nil, err
		}
		toText, err := loadOrEmpty(store, to)
		if err != nil {
			return nil, err
		}
		if fromText == toText {
			return nil, nil
		}
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(fromText),
			B:        difflib.SplitLines(toText),
			FromFile: "a/" + path,
			ToFile:   "b/" + path,
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return nil, fmt.Errorf("agit: diff %s: %w", path, err)
		}
		return []byte(text), nil
	}
}

func loadOrEmpty(store *odb.Store, oid *plumbing.Hash) (string, error) {
	if oid == nil {
		return "", nil
	}
	data, err := store.GetBlob(*oid)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DiffTrees concatenates the per-path hunks blobDiff produces for every
// changed path between from and to.
func DiffTrees(from, to map[string]plumbing.Hash, blobDiff BlobDiffFunc) ([]byte, error) {
	changes := IterChangedFiles(from, to)
	// Deterministic output: sort by path even though CompareTrees itself
	// makes no ordering guarantee.
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })

	var out strings.Builder
	for _, c := range changes {
		var fromOID, toOID *plumbing.Hash
		if h, ok := from[c.Path]; ok {
			fromOID = &h
		}
		if h, ok := to[c.Path]; ok {
			toOID = &h
		}
		hunk, err := blobDiff(fromOID, toOID, c.Path)
		if err != nil {
			return nil, err
		}
		out.Write(hunk)
	}
	return []byte(out.String()), nil
}
