package diffengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/diffengine"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

func TestDefaultBlobMergeCleanNonOverlapping(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	base, err := store.PutBlob([]byte("one\ntwo\nthree\n"))
	require.NoError(t, err)
	head, err := store.PutBlob([]byte("ONE\ntwo\nthree\n"))
	require.NoError(t, err)
	other, err := store.PutBlob([]byte("one\ntwo\nTHREE\n"))
	require.NoError(t, err)

	blobMerge := diffengine.DefaultBlobMerge(store)
	merged, err := blobMerge(&base, &head, &other)
	require.NoError(t, err)
	assert.Equal(t, "ONE\ntwo\nTHREE\n", string(merged))
}

func TestDefaultBlobMergeConflictingEdit(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	base, err := store.PutBlob([]byte("line\n"))
	require.NoError(t, err)
	head, err := store.PutBlob([]byte("head version\n"))
	require.NoError(t, err)
	other, err := store.PutBlob([]byte("other version\n"))
	require.NoError(t, err)

	blobMerge := diffengine.DefaultBlobMerge(store)
	merged, err := blobMerge(&base, &head, &other)
	require.NoError(t, err)
	assert.Equal(t, "<<<<<<< HEAD\nhead version\n=======\nother version\n>>>>>>> other\n", string(merged))
}

func TestMergeTreesCoversAllPaths(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	baseBlob, err := store.PutBlob([]byte("shared\n"))
	require.NoError(t, err)
	headOnlyBlob, err := store.PutBlob([]byte("head-only\n"))
	require.NoError(t, err)
	otherOnlyBlob, err := store.PutBlob([]byte("other-only\n"))
	require.NoError(t, err)

	base := map[string]plumbing.Hash{"shared.txt": baseBlob}
	head := map[string]plumbing.Hash{"shared.txt": baseBlob, "head-only.txt": headOnlyBlob}
	other := map[string]plumbing.Hash{"shared.txt": baseBlob, "other-only.txt": otherOnlyBlob}

	merged, err := diffengine.MergeTrees(base, head, other, diffengine.DefaultBlobMerge(store))
	require.NoError(t, err)

	assert.Contains(t, merged, "shared.txt")
	assert.Contains(t, merged, "head-only.txt")
	assert.Contains(t, merged, "other-only.txt")
}
