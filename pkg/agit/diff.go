package agit

import (
	"github.com/agit-vcs/agit/modules/diffengine"
	"github.com/agit-vcs/agit/modules/worktree"
)

// Diff renders a unified diff between the trees of two resolved commit
// names, using the configured external diff tool if one is set
// (Config.Diff.Tool), falling back to go-difflib.
func (r *Repository) Diff(fromName, toName string) ([]byte, error) {
	fromOID, err := r.GetOID(fromName)
	if err != nil {
		return nil, err
	}
	toOID, err := r.GetOID(toName)
	if err != nil {
		return nil, err
	}
	fromCommit, err := r.Objects.GetCommit(fromOID)
	if err != nil {
		return nil, err
	}
	toCommit, err := r.Objects.GetCommit(toOID)
	if err != nil {
		return nil, err
	}
	fromTree, err := worktree.GetTree(r.Objects, fromCommit.Tree, "")
	if err != nil {
		return nil, err
	}
	toTree, err := worktree.GetTree(r.Objects, toCommit.Tree, "")
	if err != nil {
		return nil, err
	}

	blobDiff, err := diffengine.NewExternalBlobDiff(r.Objects, diffengine.DefaultBlobDiff(r.Objects), r.Config.Diff.Tool)
	if err != nil {
		return nil, err
	}
	return diffengine.DiffTrees(fromTree, toTree, blobDiff)
}
