package agit

import (
	"github.com/agit-vcs/agit/modules/diffengine"
	"github.com/agit-vcs/agit/modules/index"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/worktree"
)

// Status reports the current HEAD state and two change sets:
// HEAD-tree vs index-tree, and index-tree vs working-tree. An empty
// index stands for HEAD's tree, matching Commit, which snapshots the
// working tree when nothing is staged.
type Status struct {
	Branch          string // empty when detached
	Detached        bool
	HEAD            plumbing.Hash
	MergeInProgress bool
	StagedChanges   []diffengine.Change
	UnstagedChanges []diffengine.Change
}

// GetStatus computes the current Status.
func (r *Repository) GetStatus() (Status, error) {
	var s Status

	headRef, err := r.Refs.Get(plumbing.HEAD)
	if err != nil {
		return s, err
	}
	if headRef.Type() == plumbing.SymbolicReference {
		s.Branch = headRef.Target().BranchName()
	} else {
		s.Detached = true
	}
	resolvedHead, err := r.Refs.Resolve(plumbing.HEAD)
	if err == nil {
		s.HEAD = resolvedHead.Hash()
	}

	if _, err := r.Refs.Get(plumbing.MergeHead); err == nil {
		s.MergeInProgress = true
	}

	var headTree map[string]plumbing.Hash
	if !s.HEAD.IsZero() {
		headCommit, err := r.Objects.GetCommit(s.HEAD)
		if err != nil {
			return s, err
		}
		headTree, err = worktree.GetTree(r.Objects, headCommit.Tree, "")
		if err != nil {
			return s, err
		}
	}

	idx, err := index.Load(r.RepoDir)
	if err != nil {
		return s, err
	}
	indexTree := map[string]plumbing.Hash(idx)
	if len(idx) == 0 {
		indexTree = headTree
	}

	workingTree, err := worktree.GetWorkingTree(r.Objects, r.WorkDir)
	if err != nil {
		return s, err
	}

	s.StagedChanges = diffengine.IterChangedFiles(headTree, indexTree)
	s.UnstagedChanges = diffengine.IterChangedFiles(indexTree, workingTree)
	return s, nil
}
