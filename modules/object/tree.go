package object

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agit-vcs/agit/modules/plumbing"
)

// EntryKind distinguishes the two shapes a tree entry can take: a
// blob or a subtree. No file modes, no symlinks.
type EntryKind int8

const (
	EntryBlob EntryKind = iota
	EntryTree
)

func (k EntryKind) String() string {
	if k == EntryTree {
		return "tree"
	}
	return "blob"
}

// Entry is one line of a Tree: a name unique within its parent, the kind
// of thing it names, and the OID of that thing.
type Entry struct {
	Name string
	Kind EntryKind
	OID  plumbing.Hash
}

// Tree is a sorted, flat list of Entry — the decoded form of a tree
// object. Entries are kept sorted by Name so Encode is deterministic and
// the OID depends only on contents.
type Tree struct {
	Entries []Entry
}

// NewTree sorts entries by name and returns the resulting Tree. Returns
// an error if two entries share a name or a name is otherwise invalid.
func NewTree(entries []Entry) (*Tree, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for i, e := range sorted {
		if !validEntryName(e.Name) {
			return nil, fmt.Errorf("agit: invalid tree entry name %q", e.Name)
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return nil, fmt.Errorf("agit: duplicate tree entry name %q", e.Name)
		}
	}
	return &Tree{Entries: sorted}, nil
}

// Encode renders the tree in its wire format: one
// "<type> <oid> <name>\n" line per entry, entries already sorted by name.
func (t *Tree) Encode() []byte {
	var b strings.Builder
	for _, e := range t.Entries {
		fmt.Fprintf(&b, "%s %s %s\n", e.Kind, e.OID, e.Name)
	}
	return []byte(b.String())
}

// DecodeTree parses a tree object's payload.
func DecodeTree(oid plumbing.Hash, data []byte) (*Tree, error) {
	text := string(data)
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return nil, plumbing.NewErrMalformedObject(oid, "bad tree entry line %q", line)
		}
		var kind EntryKind
		switch fields[0] {
		case "blob":
			kind = EntryBlob
		case "tree":
			kind = EntryTree
		default:
			return nil, plumbing.NewErrMalformedObject(oid, "unknown tree entry type %q", fields[0])
		}
		if !plumbing.ValidateHashHex(fields[1]) {
			return nil, plumbing.NewErrMalformedObject(oid, "bad tree entry oid %q", fields[1])
		}
		name := fields[2]
		if !validEntryName(name) {
			return nil, plumbing.NewErrMalformedObject(oid, "bad tree entry name %q", name)
		}
		entries = append(entries, Entry{Name: name, Kind: kind, OID: plumbing.NewHash(fields[1])})
	}
	return &Tree{Entries: entries}, nil
}

// Find returns the entry named name, or false if absent.
func (t *Tree) Find(name string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
