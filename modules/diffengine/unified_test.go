package diffengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/diffengine"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

func TestDefaultBlobDiffProducesUnifiedHunk(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	fromOID, err := store.PutBlob([]byte("line one\nline two\n"))
	require.NoError(t, err)
	toOID, err := store.PutBlob([]byte("line one\nline CHANGED\n"))
	require.NoError(t, err)

	blobDiff := diffengine.DefaultBlobDiff(store)
	hunk, err := blobDiff(&fromOID, &toOID, "file.txt")
	require.NoError(t, err)
	assert.Contains(t, string(hunk), "a/file.txt")
	assert.Contains(t, string(hunk), "b/file.txt")
	assert.Contains(t, string(hunk), "-line two")
	assert.Contains(t, string(hunk), "+line CHANGED")
}

func TestDefaultBlobDiffNoChangeYieldsNil(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	oid, err := store.PutBlob([]byte("same\n"))
	require.NoError(t, err)

	blobDiff := diffengine.DefaultBlobDiff(store)
	hunk, err := blobDiff(&oid, &oid, "file.txt")
	require.NoError(t, err)
	assert.Nil(t, hunk)
}

func TestDiffTreesConcatenatesChangedPaths(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	fromA, err := store.PutBlob([]byte("A old\n"))
	require.NoError(t, err)
	toA, err := store.PutBlob([]byte("A new\n"))
	require.NoError(t, err)

	from := map[string]plumbing.Hash{"a.txt": fromA}
	to := map[string]plumbing.Hash{"a.txt": toA}

	out, err := diffengine.DiffTrees(from, to, diffengine.DefaultBlobDiff(store))
	require.NoError(t, err)
	assert.Contains(t, string(out), "a/a.txt")
}
