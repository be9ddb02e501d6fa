package agit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/pkg/agit"
)

func TestFetchMirrorsRemoteHeadsAndCopiesObjects(t *testing.T) {
	remoteWorkDir := t.TempDir()
	remote, err := agit.Init(remoteWorkDir)
	require.NoError(t, err)
	defer remote.Close()

	writeWorkFile(t, remoteWorkDir, "a.txt", "from remote")
	remoteHead, err := remote.Commit("remote commit")
	require.NoError(t, err)

	localWorkDir := t.TempDir()
	local, err := agit.Init(localWorkDir)
	require.NoError(t, err)
	defer local.Close()

	require.NoError(t, local.Fetch(remoteWorkDir))

	mirrored, err := local.Refs.Resolve(plumbing.ReferenceName("refs/remotes/master"))
	require.NoError(t, err)
	assert.Equal(t, remoteHead, mirrored.Hash())

	commit, err := local.Objects.GetCommit(remoteHead)
	require.NoError(t, err)
	assert.Equal(t, "remote commit", commit.Message)
}

func TestPushCopiesLocalObjectsAndUpdatesRemoteRef(t *testing.T) {
	localWorkDir := t.TempDir()
	local, err := agit.Init(localWorkDir)
	require.NoError(t, err)
	defer local.Close()

	writeWorkFile(t, localWorkDir, "a.txt", "from local")
	localHead, err := local.Commit("local commit")
	require.NoError(t, err)

	remoteWorkDir := t.TempDir()
	remote, err := agit.Init(remoteWorkDir)
	require.NoError(t, err)
	defer remote.Close()

	require.NoError(t, local.Push(remoteWorkDir, plumbing.NewBranchReferenceName("master")))

	remoteHead, err := remote.Refs.Resolve(plumbing.NewBranchReferenceName("master"))
	require.NoError(t, err)
	assert.Equal(t, localHead, remoteHead.Hash())

	commit, err := remote.Objects.GetCommit(localHead)
	require.NoError(t, err)
	assert.Equal(t, "local commit", commit.Message)
}
