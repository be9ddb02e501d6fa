// Package diffengine aligns flattened trees by path, classifies
// per-path changes, and produces textual diffs and three-way merges
// via injected hooks, built on github.com/pmezard/go-difflib.
package diffengine

import (
	"github.com/agit-vcs/agit/modules/plumbing"
)

// Row is one aligned line of output from CompareTrees: the same path in
// each of N trees, with a nil OID wherever that tree lacks the path.
type Row struct {
	Path string
	OIDs []*plumbing.Hash
}

// CompareTrees aligns N flattened trees (path → blob-OID maps, as
// returned by worktree.GetTree) by path. Output order is unspecified;
// callers must not assume a particular path order.
func CompareTrees(trees ...map[string]plumbing.Hash) []Row {
	paths := map[string]struct{}{}
	for _, t := range trees {
		for p := range t {
			paths[p] = struct{}{}
		}
	}
	rows := make([]Row, 0, len(paths))
	for p := range paths {
		oids := make([]*plumbing.Hash, len(trees))
		for i, t := range trees {
			if h, ok := t[p]; ok {
				hh := h
				oids[i] = &hh
			}
		}
		rows = append(rows, Row{Path: p, OIDs: oids})
	}
	return rows
}

// ChangeAction classifies how a path differs between two trees.
type ChangeAction int

const (
	Unchanged ChangeAction = iota
	NewFile
	Deleted
	Modified
)

func (a ChangeAction) String() string {
	switch a {
	case NewFile:
		return "new file"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unchanged"
	}
}

// Change is one entry yielded by IterChangedFiles.
type Change struct {
	Path   string
	Action ChangeAction
}

// IterChangedFiles emits a Change for every path where from and to
// differ.
func IterChangedFiles(from, to map[string]plumbing.Hash) []Change {
	rows := CompareTrees(from, to)
	changes := make([]Change, 0, len(rows))
	for _, r := range rows {
		o1, o2 := r.OIDs[0], r.OIDs[1]
		switch {
		case o1 == nil && o2 != nil:
			changes = append(changes, Change{Path: r.Path, Action: NewFile})
		case o1 != nil && o2 == nil:
			changes = append(changes, Change{Path: r.Path, Action: Deleted})
		case o1 != nil && o2 != nil && *o1 != *o2:
			changes = append(changes, Change{Path: r.Path, Action: Modified})
		}
	}
	return changes
}
