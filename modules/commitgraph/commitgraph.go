// Package commitgraph implements commit lookup, first-parent-front
// breadth-first traversal, merge-base computation, and the transitive
// object walk replication uses. History traversal is modeled over a
// deque from github.com/emirpasic/gods: the first-parent-front ordering
// rule (first parent to the front of the frontier, the rest to the
// back) needs both-end insertion that a FIFO queue can't express, but
// gods' doubly linked list does directly via Prepend/Append.
package commitgraph

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// GetCommit reads back and decodes the commit named oid.
func GetCommit(store *odb.Store, oid plumbing.Hash) (*object.Commit, error) {
	return store.GetCommit(oid)
}

// IterCommitsAndParents performs a breadth-first traversal over
// the history reachable from starts: each commit's first parent is
// pushed to the front of the frontier (so it is visited next), the rest
// to the back, and no commit is emitted twice. fn is called once per
// visited OID in the resulting deterministic mainline-first order; it
// may return plumbing.ErrStop to end the walk early without error.
func IterCommitsAndParents(store *odb.Store, starts []plumbing.Hash, fn func(plumbing.Hash) error) error {
	frontier := doublylinkedlist.New()
	for _, h := range starts {
		frontier.Append(h)
	}
	visited := hashset.New()

	for !frontier.Empty() {
		v, _ := frontier.Get(0)
		frontier.Remove(0)
		oid := v.(plumbing.Hash)
		if visited.Contains(oid) {
			continue
		}
		visited.Add(oid)

		if err := fn(oid); err != nil {
			if err == plumbing.ErrStop {
				return nil
			}
			return err
		}

		c, err := store.GetCommit(oid)
		if err != nil {
			return err
		}
		if len(c.Parents) == 0 {
			continue
		}
		// First parent goes to the front of the frontier so it is
		// visited next; remaining parents go to the back.
		frontier.Prepend(c.Parents[0])
		for _, p := range c.Parents[1:] {
			frontier.Append(p)
		}
	}
	return nil
}

// GetMergeBase returns the first common ancestor of a and b discovered
// by walking ancestors of b against the precomputed ancestor set of a.
// Returns plumbing.ZeroHash, false if a and b share no ancestor.
func GetMergeBase(store *odb.Store, a, b plumbing.Hash) (plumbing.Hash, bool, error) {
	ancestorsOfA := hashset.New()
	if err := IterCommitsAndParents(store, []plumbing.Hash{a}, func(h plumbing.Hash) error {
		ancestorsOfA.Add(h)
		return nil
	}); err != nil {
		return plumbing.ZeroHash, false, err
	}

	var found plumbing.Hash
	ok := false
	err := IterCommitsAndParents(store, []plumbing.Hash{b}, func(h plumbing.Hash) error {
		if ancestorsOfA.Contains(h) {
			found = h
			ok = true
			return plumbing.ErrStop
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	return found, ok, nil
}

// IterObjectsInCommits yields every OID reachable from oids: each commit,
// its tree, and every tree/blob OID within that tree. Used by
// replication to compute the transitive object set to copy.
func IterObjectsInCommits(store *odb.Store, oids []plumbing.Hash, fn func(plumbing.Hash) error) error {
	seenTrees := hashset.New()
	return IterCommitsAndParents(store, oids, func(commitOID plumbing.Hash) error {
		if err := fn(commitOID); err != nil {
			return err
		}
		c, err := store.GetCommit(commitOID)
		if err != nil {
			return err
		}
		return walkTree(store, c.Tree, seenTrees, fn)
	})
}

func walkTree(store *odb.Store, oid plumbing.Hash, seen *hashset.Set, fn func(plumbing.Hash) error) error {
	if seen.Contains(oid) {
		return nil
	}
	seen.Add(oid)
	if err := fn(oid); err != nil {
		return err
	}
	tree, err := store.GetTree(oid)
	if err != nil {
		return err
	}
	for _, e := range tree.Entries {
		switch e.Kind {
		case object.EntryBlob:
			if seen.Contains(e.OID) {
				continue
			}
			seen.Add(e.OID)
			if err := fn(e.OID); err != nil {
				return err
			}
		case object.EntryTree:
			if err := walkTree(store, e.OID, seen, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
