package odb

import (
	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// PutBlob stores raw file content and returns its id.
func (s *Store) PutBlob(data []byte) (plumbing.Hash, error) {
	return s.HashObject(object.KindBlob, data)
}

// GetBlob reads back the content stored under oid.
func (s *Store) GetBlob(oid plumbing.Hash) ([]byte, error) {
	_, data, err := s.GetObject(oid, object.KindBlob)
	return data, err
}

// PutTree encodes and stores t, returning its id.
func (s *Store) PutTree(t *object.Tree) (plumbing.Hash, error) {
	return s.HashObject(object.KindTree, t.Encode())
}

// GetTree reads back and decodes the tree stored under oid.
func (s *Store) GetTree(oid plumbing.Hash) (*object.Tree, error) {
	_, data, err := s.GetObject(oid, object.KindTree)
	if err != nil {
		return nil, err
	}
	return object.DecodeTree(oid, data)
}

// PutCommit encodes and stores c, returning its id.
func (s *Store) PutCommit(c *object.Commit) (plumbing.Hash, error) {
	return s.HashObject(object.KindCommit, c.Encode())
}

// GetCommit reads back and decodes the commit stored under oid.
func (s *Store) GetCommit(oid plumbing.Hash) (*object.Commit, error) {
	_, data, err := s.GetObject(oid, object.KindCommit)
	if err != nil {
		return nil, err
	}
	return object.DecodeCommit(oid, data)
}
