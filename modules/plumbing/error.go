package plumbing

import (
	"errors"
	"fmt"
)

// ErrStop is returned by iteration callbacks (reference, commit-graph
// walks) to end the walk early without it being treated as a failure.
var ErrStop = errors.New("agit: stop iteration")

// ErrMissingObject occurs when no object with the given id is on disk.
type ErrMissingObject struct {
	OID Hash
}

func (e *ErrMissingObject) Error() string {
	return fmt.Sprintf("agit: missing object %s", e.OID)
}

// IsErrMissingObject reports whether err is an *ErrMissingObject.
func IsErrMissingObject(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrMissingObject)
	return ok
}

// ErrTypeMismatch occurs when the decoded object type differs from what the
// caller expected.
type ErrTypeMismatch struct {
	OID      Hash
	Expected string
	Got      string
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("agit: object %s: expected %s, got %s", e.OID, e.Expected, e.Got)
}

func IsErrTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrTypeMismatch)
	return ok
}

// ErrMalformedObject occurs when an object's payload cannot be decoded per
// its type (missing NUL separator, bad tree entry line, unknown commit
// header).
type ErrMalformedObject struct {
	OID    Hash
	Reason string
}

func (e *ErrMalformedObject) Error() string {
	return fmt.Sprintf("agit: malformed object %s: %s", e.OID, e.Reason)
}

func NewErrMalformedObject(oid Hash, format string, a ...any) error {
	return &ErrMalformedObject{OID: oid, Reason: fmt.Sprintf(format, a...)}
}

func IsErrMalformedObject(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrMalformedObject)
	return ok
}

// ErrUnknownName occurs when name resolution exhausts every ref candidate
// and the literal is not a 40-hex object id.
type ErrUnknownName struct {
	Name string
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("agit: unknown name %q", e.Name)
}

func IsErrUnknownName(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrUnknownName)
	return ok
}

// ErrMergeInProgress describes an operation refused because MERGE_HEAD is
// present. No operation in pkg/agit returns it; a merge in progress does
// not block checkout, commit or a second merge.
type ErrMergeInProgress struct {
	Op string
}

func (e *ErrMergeInProgress) Error() string {
	return fmt.Sprintf("agit: %s: a merge is already in progress", e.Op)
}

func IsErrMergeInProgress(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrMergeInProgress)
	return ok
}
