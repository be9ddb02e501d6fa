package agit

import (
	"github.com/agit-vcs/agit/modules/index"
)

// Add stages paths into the index: files are hashed directly,
// directories are walked recursively for every non-ignored regular
// file within.
func (r *Repository) Add(paths []string) error {
	return index.With(r.RepoDir, func(idx index.Index) (index.Index, error) {
		if err := index.Add(r.Objects, idx, paths); err != nil {
			return nil, err
		}
		return idx, nil
	})
}
