// Package odb is the object store: content-addressed storage of blobs,
// trees and commits under <repo>/objects, one flat file per object, with
// an optional in-process read-through cache. No pack files, compression,
// or multi-tier storage — a single flat directory is all it needs.
package odb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/plumbing"
)

const objectsDirName = "objects"

// Store is a single repository's object database.
type Store struct {
	root  string // <repo>/objects
	cache *ristretto.Cache[string, []byte]
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithCache enables an in-process LRU fronting object reads. Disabled by
// default: correctness never depends on it, only repeat-read latency.
func WithCache(enabled bool) Option {
	return func(s *Store) {
		if !enabled {
			return
		}
		c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
			NumCounters: 100000,
			MaxCost:     100000,
			BufferItems: 64,
		})
		if err == nil {
			s.cache = c
		}
	}
}

// Open returns the Store rooted at <repoDir>/objects, creating the
// directory if absent.
func Open(repoDir string, opts ...Option) (*Store, error) {
	root := filepath.Join(repoDir, objectsDirName)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("agit: create objects dir: %w", err)
	}
	s := &Store{root: root}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close releases cache resources, if any.
func (s *Store) Close() {
	if s.cache != nil {
		s.cache.Close()
		s.cache = nil
	}
}

func (s *Store) path(oid plumbing.Hash) string {
	return filepath.Join(s.root, oid.String())
}

// payload returns the "<type>\x00<bytes>" framing that HashObject and
// GetObject hash and verify.
func payload(kind object.Kind, data []byte) []byte {
	out := make([]byte, 0, len(kind)+1+len(data))
	out = append(out, kind...)
	out = append(out, 0)
	out = append(out, data...)
	return out
}

// HashObject computes the id of (kind, data) and — unless it is already
// present — writes it to the store. Writes are atomic: a temp file is
// renamed into place so a concurrent reader never observes a partial
// object.
func (s *Store) HashObject(kind object.Kind, data []byte) (plumbing.Hash, error) {
	framed := payload(kind, data)
	h := plumbing.NewHasher()
	_, _ = h.Write(framed)
	oid := h.Sum()

	dest := s.path(oid)
	if _, err := os.Stat(dest); err == nil {
		return oid, nil
	}

	tmp, err := os.CreateTemp(s.root, "tmp-*")
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("agit: stage object: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(framed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return plumbing.ZeroHash, fmt.Errorf("agit: write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return plumbing.ZeroHash, fmt.Errorf("agit: close object: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return plumbing.ZeroHash, fmt.Errorf("agit: commit object: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(oid.String(), framed, int64(len(framed)))
	}
	return oid, nil
}

// GetObject reads back the payload stored under oid, verifying that its
// recorded type matches expected. Passing "" for expected skips the
// type check.
func (s *Store) GetObject(oid plumbing.Hash, expected object.Kind) (object.Kind, []byte, error) {
	var raw []byte
	cached := false
	if s.cache != nil {
		raw, cached = s.cache.Get(oid.String())
	}
	if !cached {
		var err error
		raw, err = os.ReadFile(s.path(oid))
		if err != nil {
			if os.IsNotExist(err) {
				return "", nil, &plumbing.ErrMissingObject{OID: oid}
			}
			return "", nil, fmt.Errorf("agit: read object %s: %w", oid, err)
		}
	}

	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, plumbing.NewErrMalformedObject(oid, "missing type separator")
	}
	kind, err := object.ParseKind(string(raw[:nul]))
	if err != nil {
		return "", nil, plumbing.NewErrMalformedObject(oid, "%s", err)
	}
	data := raw[nul+1:]
	if expected != "" && kind != expected {
		return "", nil, &plumbing.ErrTypeMismatch{OID: oid, Expected: string(expected), Got: string(kind)}
	}

	if s.cache != nil && !cached {
		s.cache.Set(oid.String(), raw, int64(len(raw)))
	}
	return kind, data, nil
}

// Exists reports whether oid names an object already on disk.
func (s *Store) Exists(oid plumbing.Hash) bool {
	_, err := os.Stat(s.path(oid))
	return err == nil
}
