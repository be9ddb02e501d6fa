package agit

import (
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/reflog"
	"github.com/agit-vcs/agit/modules/worktree"
)

// Checkout resolves name to a commit, restores its tree into the
// working directory, then points HEAD at it: symbolically at
// refs/heads/<name> if that branch exists, otherwise directly
// (detached).
func (r *Repository) Checkout(name string) error {
	oid, err := r.GetOID(name)
	if err != nil {
		return err
	}
	c, err := r.Objects.GetCommit(oid)
	if err != nil {
		return err
	}
	if err := worktree.ReadTree(r.Objects, r.WorkDir, c.Tree); err != nil {
		return err
	}

	before, _ := r.Refs.Resolve(plumbing.HEAD)

	branch := plumbing.NewBranchReferenceName(name)
	var newHead *plumbing.Reference
	if _, err := r.Refs.Get(branch); err == nil {
		newHead = plumbing.NewSymbolicReference(plumbing.HEAD, branch)
	} else {
		newHead = plumbing.NewHashReference(plumbing.HEAD, oid)
	}
	if err := r.Refs.Update(newHead); err != nil {
		return err
	}

	if r.Config.Reflog.Enabled {
		var beforeHash plumbing.Hash
		if before != nil {
			beforeHash = before.Hash()
		}
		_ = reflog.RecordHEADMove(r.RepoDir, "checkout", beforeHash, oid, "checkout: moving to "+name)
	}
	return nil
}

// Reset rewrites HEAD (dereferenced — through any symbolic chain) to
// oid, leaving the working tree and index untouched.
func (r *Repository) Reset(oid plumbing.Hash) error {
	return r.advanceHEAD(oid)
}

// CreateBranch writes refs/heads/<name> directly at oid.
func (r *Repository) CreateBranch(name string, oid plumbing.Hash) error {
	return r.Refs.Update(plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), oid))
}

// CreateTag writes refs/tags/<name> directly at oid.
func (r *Repository) CreateTag(name string, oid plumbing.Hash) error {
	return r.Refs.Update(plumbing.NewHashReference(plumbing.NewTagReferenceName(name), oid))
}
