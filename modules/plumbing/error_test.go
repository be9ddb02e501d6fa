package plumbing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agit-vcs/agit/modules/plumbing"
)

func TestErrorPredicates(t *testing.T) {
	h := plumbing.ZeroHash

	assert.True(t, plumbing.IsErrMissingObject(&plumbing.ErrMissingObject{OID: h}))
	assert.False(t, plumbing.IsErrMissingObject(nil))
	assert.False(t, plumbing.IsErrMissingObject(plumbing.ErrStop))

	assert.True(t, plumbing.IsErrTypeMismatch(&plumbing.ErrTypeMismatch{OID: h, Expected: "blob", Got: "tree"}))
	assert.True(t, plumbing.IsErrMalformedObject(plumbing.NewErrMalformedObject(h, "bad thing %d", 1)))
	assert.True(t, plumbing.IsErrUnknownName(&plumbing.ErrUnknownName{Name: "nope"}))
	assert.True(t, plumbing.IsErrMergeInProgress(&plumbing.ErrMergeInProgress{Op: "checkout"}))
}

func TestErrStopIsDistinctSentinel(t *testing.T) {
	assert.ErrorIs(t, plumbing.ErrStop, plumbing.ErrStop)
	assert.NotEqual(t, plumbing.ErrStop.Error(), (&plumbing.ErrUnknownName{Name: "x"}).Error())
}
