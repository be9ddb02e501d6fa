package agit

import (
	"github.com/agit-vcs/agit/modules/index"
	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/reflog"
	"github.com/agit-vcs/agit/modules/worktree"
)

// Commit writes a tree from the current index (or from the working
// tree when the index is empty), links it to the
// resolved parents (HEAD and, if present, MERGE_HEAD), and advances
// HEAD to the new commit.
func (r *Repository) Commit(message string) (plumbing.Hash, error) {
	idx, err := index.Load(r.RepoDir)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	var treeOID plumbing.Hash
	if len(idx) > 0 {
		treeOID, err = index.GetTree(r.Objects, idx)
	} else {
		treeOID, err = worktree.WriteTree(r.Objects, r.WorkDir)
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}

	c := &object.Commit{Tree: treeOID, Message: message}

	var headBefore plumbing.Hash
	if headRef, err := r.Refs.Resolve(plumbing.HEAD); err == nil {
		headBefore = headRef.Hash()
		c.Parents = append(c.Parents, headBefore)
	}
	mergeInProgress := false
	if mergeRef, err := r.Refs.Get(plumbing.MergeHead); err == nil {
		c.Parents = append(c.Parents, mergeRef.Hash())
		mergeInProgress = true
	}

	oid, err := r.Objects.PutCommit(c)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := r.advanceHEAD(oid); err != nil {
		return plumbing.ZeroHash, err
	}
	if mergeInProgress {
		if err := r.Refs.Delete(plumbing.MergeHead); err != nil {
			return plumbing.ZeroHash, err
		}
	}

	if r.Config.Reflog.Enabled {
		_ = reflog.RecordHEADMove(r.RepoDir, "commit", headBefore, oid, message)
	}
	return oid, nil
}

// advanceHEAD writes oid to whatever HEAD currently points at: if HEAD
// is symbolic (on a branch), the chain is followed and the ref at its
// end is updated (created if absent); if HEAD is detached, HEAD itself
// is updated directly.
func (r *Repository) advanceHEAD(oid plumbing.Hash) error {
	target := plumbing.HEAD
	for {
		ref, err := r.Refs.Get(target)
		if err != nil {
			if err == plumbing.ErrReferenceNotFound && target != plumbing.HEAD {
				break
			}
			return err
		}
		if ref.Type() != plumbing.SymbolicReference {
			break
		}
		target = ref.Target()
	}
	return r.Refs.Update(plumbing.NewHashReference(target, oid))
}
