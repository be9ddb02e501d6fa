package agit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/pkg/agit"
)

func TestMergeNoOpWhenOtherIsAncestor(t *testing.T) {
	workDir := t.TempDir()
	repo, err := agit.Init(workDir)
	require.NoError(t, err)
	defer repo.Close()

	writeWorkFile(t, workDir, "a.txt", "v1")
	first, err := repo.Commit("first")
	require.NoError(t, err)
	require.NoError(t, repo.CreateBranch("old", first))

	writeWorkFile(t, workDir, "a.txt", "v2")
	_, err = repo.Commit("second")
	require.NoError(t, err)

	result, err := repo.Merge("old")
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.False(t, result.FastForward)
	assert.False(t, result.Conflict)
}

func TestMergeFastForwardsWhenHEADIsAncestor(t *testing.T) {
	workDir := t.TempDir()
	repo, err := agit.Init(workDir)
	require.NoError(t, err)
	defer repo.Close()

	writeWorkFile(t, workDir, "a.txt", "v1")
	first, err := repo.Commit("first")
	require.NoError(t, err)
	require.NoError(t, repo.CreateBranch("topic", first))
	require.NoError(t, repo.Checkout("topic"))

	writeWorkFile(t, workDir, "a.txt", "v2")
	second, err := repo.Commit("on topic")
	require.NoError(t, err)

	require.NoError(t, repo.Checkout("master"))

	result, err := repo.Merge("topic")
	require.NoError(t, err)
	assert.True(t, result.FastForward)
	assert.False(t, result.NoOp)
	assert.False(t, result.Conflict)

	headOID, err := repo.GetOID("@")
	require.NoError(t, err)
	assert.Equal(t, second, headOID)

	content, err := os.ReadFile(filepath.Join(workDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))
}

func TestMergeConflictingEditsSetsMergeHead(t *testing.T) {
	workDir := t.TempDir()
	repo, err := agit.Init(workDir)
	require.NoError(t, err)
	defer repo.Close()

	writeWorkFile(t, workDir, "a.txt", "base\n")
	base, err := repo.Commit("base")
	require.NoError(t, err)
	require.NoError(t, repo.CreateBranch("topic", base))

	writeWorkFile(t, workDir, "a.txt", "head version\n")
	_, err = repo.Commit("head change")
	require.NoError(t, err)

	require.NoError(t, repo.Checkout("topic"))
	writeWorkFile(t, workDir, "a.txt", "other version\n")
	_, err = repo.Commit("other change")
	require.NoError(t, err)

	require.NoError(t, repo.Checkout("master"))

	result, err := repo.Merge("topic")
	require.NoError(t, err)
	assert.True(t, result.Conflict)

	content, err := os.ReadFile(filepath.Join(workDir, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<<<<<<< HEAD")
	assert.Contains(t, string(content), "head version")
	assert.Contains(t, string(content), "other version")

	_, err = repo.Refs.Get(plumbing.MergeHead)
	require.NoError(t, err)
}
