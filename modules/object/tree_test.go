package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/plumbing"
)

func TestNewTreeSortsAndRejectsDuplicates(t *testing.T) {
	h1 := plumbing.NewHash("aa00000000000000000000000000000000000000")
	h2 := plumbing.NewHash("bb00000000000000000000000000000000000000")

	tree, err := object.NewTree([]object.Entry{
		{Name: "zeta.txt", Kind: object.EntryBlob, OID: h1},
		{Name: "alpha.txt", Kind: object.EntryBlob, OID: h2},
	})
	require.NoError(t, err)
	require.Len(t, tree.Entries, 2)
	assert.Equal(t, "alpha.txt", tree.Entries[0].Name)
	assert.Equal(t, "zeta.txt", tree.Entries[1].Name)

	_, err = object.NewTree([]object.Entry{
		{Name: "dup", Kind: object.EntryBlob, OID: h1},
		{Name: "dup", Kind: object.EntryBlob, OID: h2},
	})
	assert.Error(t, err)

	_, err = object.NewTree([]object.Entry{{Name: "..", Kind: object.EntryBlob, OID: h1}})
	assert.Error(t, err)
}

func TestTreeEncodeDecodeRoundTrip(t *testing.T) {
	blobOID := plumbing.NewHash("aa00000000000000000000000000000000000000")
	subOID := plumbing.NewHash("bb00000000000000000000000000000000000000")

	tree, err := object.NewTree([]object.Entry{
		{Name: "file.txt", Kind: object.EntryBlob, OID: blobOID},
		{Name: "sub", Kind: object.EntryTree, OID: subOID},
	})
	require.NoError(t, err)

	encoded := tree.Encode()
	decoded, err := object.DecodeTree(plumbing.ZeroHash, encoded)
	require.NoError(t, err)
	assert.Equal(t, tree.Entries, decoded.Entries)

	entry, ok := decoded.Find("file.txt")
	require.True(t, ok)
	assert.Equal(t, blobOID, entry.OID)

	_, ok = decoded.Find("missing")
	assert.False(t, ok)
}

func TestDecodeTreeRejectsMalformedLines(t *testing.T) {
	_, err := object.DecodeTree(plumbing.ZeroHash, []byte("not a valid line\n"))
	assert.True(t, plumbing.IsErrMalformedObject(err))

	_, err = object.DecodeTree(plumbing.ZeroHash, []byte("blob badoid name\n"))
	assert.True(t, plumbing.IsErrMalformedObject(err))

	_, err = object.DecodeTree(plumbing.ZeroHash, []byte("weird aa00000000000000000000000000000000000000 name\n"))
	assert.True(t, plumbing.IsErrMalformedObject(err))
}
