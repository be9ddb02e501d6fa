package agit

import (
	"fmt"

	"github.com/agit-vcs/agit/modules/commitgraph"
	"github.com/agit-vcs/agit/modules/diffengine"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/worktree"
)

// MergeResult reports what Merge actually did.
type MergeResult struct {
	FastForward bool
	NoOp        bool
	Conflict    bool
}

// Merge computes the merge base of HEAD and other; no-op if other is
// already an ancestor of HEAD, fast-forward if
// HEAD is an ancestor of other, otherwise perform a three-way merge of
// the working tree and leave MERGE_HEAD set for a follow-up Commit.
func (r *Repository) Merge(otherName string) (MergeResult, error) {
	var result MergeResult

	headRef, err := r.Refs.Resolve(plumbing.HEAD)
	if err != nil {
		return result, fmt.Errorf("agit: merge: cannot resolve HEAD: %w", err)
	}
	headOID := headRef.Hash()

	otherOID, err := r.GetOID(otherName)
	if err != nil {
		return result, err
	}

	base, ok, err := commitgraph.GetMergeBase(r.Objects, headOID, otherOID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, fmt.Errorf("agit: merge: %s and %s share no common history", headOID, otherOID)
	}

	if base == otherOID {
		result.NoOp = true
		return result, nil
	}
	if base == headOID {
		other, err := r.Objects.GetCommit(otherOID)
		if err != nil {
			return result, err
		}
		if err := worktree.ReadTree(r.Objects, r.WorkDir, other.Tree); err != nil {
			return result, err
		}
		if err := r.advanceHEAD(otherOID); err != nil {
			return result, err
		}
		result.FastForward = true
		return result, nil
	}

	baseCommit, err := r.Objects.GetCommit(base)
	if err != nil {
		return result, err
	}
	headCommit, err := r.Objects.GetCommit(headOID)
	if err != nil {
		return result, err
	}
	otherCommit, err := r.Objects.GetCommit(otherOID)
	if err != nil {
		return result, err
	}

	baseTree, err := worktree.GetTree(r.Objects, baseCommit.Tree, "")
	if err != nil {
		return result, err
	}
	headTree, err := worktree.GetTree(r.Objects, headCommit.Tree, "")
	if err != nil {
		return result, err
	}
	otherTree, err := worktree.GetTree(r.Objects, otherCommit.Tree, "")
	if err != nil {
		return result, err
	}

	merged, err := diffengine.MergeTrees(baseTree, headTree, otherTree, diffengine.DefaultBlobMerge(r.Objects))
	if err != nil {
		return result, err
	}

	if err := worktree.EmptyDirectory(r.WorkDir); err != nil {
		return result, err
	}
	for path, content := range merged {
		if err := writeWorkingFile(r.WorkDir, path, content); err != nil {
			return result, err
		}
		if containsConflictMarkers(content) {
			result.Conflict = true
		}
	}

	if err := r.Refs.Update(plumbing.NewHashReference(plumbing.MergeHead, otherOID)); err != nil {
		return result, err
	}
	return result, nil
}
