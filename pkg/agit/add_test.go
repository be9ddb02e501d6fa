package agit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/pkg/agit"
)

func TestAddStagesSinglePathIntoIndex(t *testing.T) {
	workDir := t.TempDir()
	repo, err := agit.Init(workDir)
	require.NoError(t, err)
	defer repo.Close()

	writeWorkFile(t, workDir, "a.txt", "hello")
	chdir(t, workDir)
	require.NoError(t, repo.Add([]string{"a.txt"}))

	oid, err := repo.Commit("staged")
	require.NoError(t, err)

	tree, err := repo.Objects.GetCommit(oid)
	require.NoError(t, err)
	treeObj, err := repo.Objects.GetTree(tree.Tree)
	require.NoError(t, err)
	require.Len(t, treeObj.Entries, 1)
	assert.Equal(t, "a.txt", treeObj.Entries[0].Name)
}

func TestAddStagesDirectoryRecursively(t *testing.T) {
	workDir := t.TempDir()
	repo, err := agit.Init(workDir)
	require.NoError(t, err)
	defer repo.Close()

	writeWorkFile(t, workDir, "sub/a.txt", "hello")
	writeWorkFile(t, workDir, "sub/b.txt", "world")
	chdir(t, workDir)
	require.NoError(t, repo.Add([]string{"sub"}))

	oid, err := repo.Commit("staged dir")
	require.NoError(t, err)

	commit, err := repo.Objects.GetCommit(oid)
	require.NoError(t, err)
	treeObj, err := repo.Objects.GetTree(commit.Tree)
	require.NoError(t, err)
	require.Len(t, treeObj.Entries, 1)
	assert.Equal(t, "sub", treeObj.Entries[0].Name)
}
