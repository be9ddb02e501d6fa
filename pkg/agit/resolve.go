package agit

import (
	"github.com/agit-vcs/agit/modules/plumbing"
)

// GetOID resolves a name to an object id:
//  1. "@" is shorthand for "HEAD".
//  2. Try, in order, name / refs/name / refs/tags/name / refs/heads/name;
//     the first whose unresolved value is non-empty is dereferenced and
//     returned.
//  3. Otherwise, if name is itself 40 hex chars, return it as-is.
//  4. Otherwise fail with ErrUnknownName.
func (r *Repository) GetOID(name string) (plumbing.Hash, error) {
	if name == "@" {
		name = string(plumbing.HEAD)
	}

	candidates := []string{
		name,
		"refs/" + name,
		"refs/tags/" + name,
		"refs/heads/" + name,
	}
	for _, c := range candidates {
		refName := plumbing.ReferenceName(c)
		if _, err := r.Refs.Get(refName); err == nil {
			resolved, err := r.Refs.Resolve(refName)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			return resolved.Hash(), nil
		}
	}

	if plumbing.ValidateHashHex(name) {
		return plumbing.NewHash(name), nil
	}
	return plumbing.ZeroHash, &plumbing.ErrUnknownName{Name: name}
}
