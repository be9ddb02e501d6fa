package index_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/index"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/worktree"
)

func TestLoadAbsentReturnsEmptyIndex(t *testing.T) {
	idx, err := index.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repoDir := t.TempDir()
	store, err := odb.Open(repoDir)
	require.NoError(t, err)
	defer store.Close()

	oid, err := store.PutBlob([]byte("staged content"))
	require.NoError(t, err)

	idx := index.Index{"a.txt": oid}
	require.NoError(t, index.Save(repoDir, idx))

	loaded, err := index.Load(repoDir)
	require.NoError(t, err)
	assert.Equal(t, idx, loaded)
}

func TestWithPersistsOnlyOnSuccess(t *testing.T) {
	repoDir := t.TempDir()
	store, err := odb.Open(repoDir)
	require.NoError(t, err)
	defer store.Close()

	oid, err := store.PutBlob([]byte("x"))
	require.NoError(t, err)

	err = index.With(repoDir, func(idx index.Index) (index.Index, error) {
		idx["a.txt"] = oid
		return idx, nil
	})
	require.NoError(t, err)

	err = index.With(repoDir, func(idx index.Index) (index.Index, error) {
		return nil, assert.AnError
	})
	assert.Error(t, err)

	loaded, err := index.Load(repoDir)
	require.NoError(t, err)
	assert.Equal(t, oid, loaded["a.txt"])
}

func TestAddStagesFilesAndDirectories(t *testing.T) {
	repoDir := t.TempDir()
	store, err := odb.Open(repoDir)
	require.NoError(t, err)
	defer store.Close()

	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, "top.txt"), []byte("top"), 0o644))
	subdir := filepath.Join(work, "sub")
	require.NoError(t, os.MkdirAll(subdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(subdir, "nested.txt"), []byte("nested"), 0o644))

	idx := index.Index{}
	require.NoError(t, index.Add(store, idx, []string{filepath.Join(work, "top.txt"), subdir}))

	found := false
	for p := range idx {
		if filepath.Base(p) == "top.txt" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Len(t, idx, 2)
}

func TestGetTreeBuildsNestedTreeFromFlatIndex(t *testing.T) {
	repoDir := t.TempDir()
	store, err := odb.Open(repoDir)
	require.NoError(t, err)
	defer store.Close()

	topOID, err := store.PutBlob([]byte("top"))
	require.NoError(t, err)
	nestedOID, err := store.PutBlob([]byte("nested"))
	require.NoError(t, err)

	idx := index.Index{
		"top.txt":     topOID,
		"sub/deep.txt": nestedOID,
	}
	treeOID, err := index.GetTree(store, idx)
	require.NoError(t, err)

	flat, err := worktree.GetTree(store, treeOID, "")
	require.NoError(t, err)
	assert.Equal(t, topOID, flat["top.txt"])
	assert.Equal(t, nestedOID, flat["sub/deep.txt"])
}
