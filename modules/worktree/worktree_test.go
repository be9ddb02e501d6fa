package worktree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/worktree"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestWriteThenGetTreeRoundTrip(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	work := t.TempDir()
	writeFile(t, work, "a.txt", "alpha")
	writeFile(t, work, "sub/b.txt", "beta")
	// The repo directory itself must never appear in the snapshotted tree.
	writeFile(t, work, ".agit/ignored.txt", "should not be hashed")

	oid, err := worktree.WriteTree(store, work)
	require.NoError(t, err)

	flat, err := worktree.GetTree(store, oid, "")
	require.NoError(t, err)

	require.Len(t, flat, 2)
	assert.Contains(t, flat, "a.txt")
	assert.Contains(t, flat, "sub/b.txt")
}

func TestReadTreeMaterializesAndEmptiesFirst(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	work := t.TempDir()
	writeFile(t, work, "keep.txt", "keep me")
	oid, err := worktree.WriteTree(store, work)
	require.NoError(t, err)

	// Stray file present before checkout should be removed by ReadTree's
	// emptying step.
	writeFile(t, work, "stray.txt", "should be gone")

	require.NoError(t, worktree.ReadTree(store, work, oid))

	data, err := os.ReadFile(filepath.Join(work, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	_, err = os.Stat(filepath.Join(work, "stray.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetWorkingTreeSkipsRepoDir(t *testing.T) {
	store, err := odb.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	work := t.TempDir()
	writeFile(t, work, "visible.txt", "v")
	writeFile(t, work, ".agit/objects/deadbeef", "internal")

	tree, err := worktree.GetWorkingTree(store, work)
	require.NoError(t, err)
	assert.Contains(t, tree, "visible.txt")
	for p := range tree {
		assert.NotContains(t, p, ".agit")
	}
}

func TestEmptyDirectoryToleratesAbsentDir(t *testing.T) {
	assert.NoError(t, worktree.EmptyDirectory(filepath.Join(t.TempDir(), "does-not-exist")))
}
