// Package object defines the three object kinds the content-addressed
// store can hold — blobs, trees and commits — and their on-disk text
// encodings: plain text, no magic bytes, no compression, no file modes.
package object

import (
	"fmt"
	"strings"

	"github.com/agit-vcs/agit/modules/plumbing"
)

// Kind is the object type tag recorded alongside every stored payload
// ("<type>\x00<bytes>").
type Kind string

const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

func (k Kind) String() string { return string(k) }

// ParseKind validates a type tag read back off disk.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBlob, KindTree, KindCommit:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("agit: unsupported object type %q", s)
	}
}

// validEntryName reports whether name may be used as a tree entry name:
// it must be non-empty, must not be the reserved path components "." or
// "..", and must not contain '/', which would let an entry escape its
// tree.
func validEntryName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "/")
}
