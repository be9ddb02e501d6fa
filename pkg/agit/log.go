package agit

import (
	"github.com/agit-vcs/agit/modules/commitgraph"
	"github.com/agit-vcs/agit/modules/object"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// LogEntry pairs a commit's id with its decoded contents, as yielded by
// Log.
type LogEntry struct {
	OID    plumbing.Hash
	Commit *object.Commit
}

// Log walks history from starts in first-parent-front order, the
// order a `log` command displays.
func (r *Repository) Log(starts []plumbing.Hash) ([]LogEntry, error) {
	var entries []LogEntry
	err := commitgraph.IterCommitsAndParents(r.Objects, starts, func(oid plumbing.Hash) error {
		c, err := r.Objects.GetCommit(oid)
		if err != nil {
			return err
		}
		entries = append(entries, LogEntry{OID: oid, Commit: c})
		return nil
	})
	return entries, err
}

// Show returns the decoded commit named by name.
func (r *Repository) Show(name string) (plumbing.Hash, *object.Commit, error) {
	oid, err := r.GetOID(name)
	if err != nil {
		return plumbing.ZeroHash, nil, err
	}
	c, err := r.Objects.GetCommit(oid)
	if err != nil {
		return plumbing.ZeroHash, nil, err
	}
	return oid, c, nil
}
