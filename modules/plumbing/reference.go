// Copyright 2018 Sourced Technologies, S.L.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ReferencePrefix = "refs/"
	refHeadPrefix   = ReferencePrefix + "heads/"
	refTagPrefix    = ReferencePrefix + "tags/"
	refRemotePrefix = ReferencePrefix + "remotes/"
	symrefPrefix    = "ref: "
)

var ErrReferenceNotFound = errors.New("reference does not exist")

// ReferenceType distinguishes a direct (hash) reference from a symbolic one.
type ReferenceType int8

const (
	InvalidReference ReferenceType = iota
	HashReference
	SymbolicReference
)

func (t ReferenceType) String() string {
	switch t {
	case HashReference:
		return "hash-reference"
	case SymbolicReference:
		return "symbolic-reference"
	default:
		return "invalid-reference"
	}
}

// ReferenceName is a slash-separated path under the reference namespace,
// e.g. "HEAD", "refs/heads/master", "refs/tags/v1".
type ReferenceName string

// HEAD and Master are the two distinguished reference names every
// repository starts with.
const (
	HEAD   ReferenceName = "HEAD"
	Master ReferenceName = "refs/heads/master"
)

// MergeHead is the transient ref recorded while a merge is unresolved.
const MergeHead ReferenceName = "MERGE_HEAD"

func NewBranchReferenceName(name string) ReferenceName {
	return ReferenceName(refHeadPrefix + name)
}

func NewTagReferenceName(name string) ReferenceName {
	return ReferenceName(refTagPrefix + name)
}

func NewRemoteReferenceName(remote, name string) ReferenceName {
	return ReferenceName(refRemotePrefix + remote + "/" + name)
}

func (r ReferenceName) IsBranch() bool { return strings.HasPrefix(string(r), refHeadPrefix) }
func (r ReferenceName) IsTag() bool    { return strings.HasPrefix(string(r), refTagPrefix) }
func (r ReferenceName) IsRemote() bool { return strings.HasPrefix(string(r), refRemotePrefix) }

func (r ReferenceName) BranchName() string { return strings.TrimPrefix(string(r), refHeadPrefix) }
func (r ReferenceName) TagName() string    { return strings.TrimPrefix(string(r), refTagPrefix) }

func (r ReferenceName) String() string { return string(r) }

// Reference is a tagged union: either a direct pointer to an object (a
// HashReference) or a named pointer to another reference (a
// SymbolicReference). Expressed as two constructors over one struct
// rather than an interface hierarchy.
type Reference struct {
	t      ReferenceType
	name   ReferenceName
	hash   Hash
	target ReferenceName
}

// NewHashReference builds a direct reference n -> h.
func NewHashReference(n ReferenceName, h Hash) *Reference {
	return &Reference{t: HashReference, name: n, hash: h}
}

// NewSymbolicReference builds a symbolic reference n -> target.
func NewSymbolicReference(n, target ReferenceName) *Reference {
	return &Reference{t: SymbolicReference, name: n, target: target}
}

// NewReferenceFromString parses the on-disk textual form of a reference
// value (either "<40-hex>" or "ref: <path>") into a typed Reference.
func NewReferenceFromString(name ReferenceName, value string) *Reference {
	if strings.HasPrefix(value, symrefPrefix) {
		return NewSymbolicReference(name, ReferenceName(strings.TrimPrefix(value, symrefPrefix)))
	}
	return NewHashReference(name, NewHash(value))
}

func (r *Reference) Type() ReferenceType   { return r.t }
func (r *Reference) Name() ReferenceName   { return r.name }
func (r *Reference) Hash() Hash            { return r.hash }
func (r *Reference) Target() ReferenceName { return r.target }

// Value renders the reference's value in on-disk textual form, without its
// name (i.e. what a ref file's body holds).
func (r *Reference) Value() string {
	switch r.t {
	case HashReference:
		return r.hash.String()
	case SymbolicReference:
		return symrefPrefix + string(r.target)
	default:
		return ""
	}
}

func (r *Reference) String() string {
	return fmt.Sprintf("%s %s", r.Value(), r.name)
}
