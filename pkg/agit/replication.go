// Replication covers fetch and push against a second repository
// directory on the same filesystem — not a network transport (an
// explicit non-goal). Copy progress is reported through pkg/progress.
package agit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agit-vcs/agit/modules/commitgraph"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/pkg/progress"
)

// Fetch copies every object reachable from remoteDir's refs/heads/* into
// the local store and mirrors each such ref to refs/remotes/<name>.
func (r *Repository) Fetch(remoteDir string) error {
	remote, err := Open(remoteDir)
	if err != nil {
		return err
	}
	defer remote.Close()

	remoteHeads, err := snapshotRefs(remote, "refs/heads/")
	if err != nil {
		return err
	}

	starts := make([]plumbing.Hash, 0, len(remoteHeads))
	for _, oid := range remoteHeads {
		starts = append(starts, oid)
	}

	var toCopy []plumbing.Hash
	if err := commitgraph.IterObjectsInCommits(remote.Objects, starts, func(oid plumbing.Hash) error {
		if !r.Objects.Exists(oid) {
			toCopy = append(toCopy, oid)
		}
		return nil
	}); err != nil {
		return err
	}

	bar := progress.New(os.Stderr, "fetch", len(toCopy))
	for _, oid := range toCopy {
		if err := copyObjectFile(remote.RepoDir, r.RepoDir, oid); err != nil {
			return err
		}
		bar.Increment()
	}
	bar.Done()

	for branch, oid := range remoteHeads {
		name := plumbing.ReferenceName("refs/remotes/" + branch)
		if err := r.Refs.Update(plumbing.NewHashReference(name, oid)); err != nil {
			return err
		}
	}
	return nil
}

// Push pushes the objects reachable from local(refname) that the
// remote lacks, then updates refname on the remote to the local OID.
// Neither side performs fast-forward checks.
func (r *Repository) Push(remoteDir string, refname plumbing.ReferenceName) error {
	localRef, err := r.Refs.Resolve(refname)
	if err != nil {
		return fmt.Errorf("agit: push: resolve local %s: %w", refname, err)
	}
	localOID := localRef.Hash()

	remote, err := Open(remoteDir)
	if err != nil {
		return err
	}
	defer remote.Close()

	remoteHeads, err := snapshotRefs(remote, "refs/heads/")
	if err != nil {
		return err
	}
	var knownRemoteOIDs []plumbing.Hash
	for _, oid := range remoteHeads {
		if remote.Objects.Exists(oid) {
			knownRemoteOIDs = append(knownRemoteOIDs, oid)
		}
	}

	localObjects := map[plumbing.Hash]bool{}
	if err := commitgraph.IterObjectsInCommits(r.Objects, []plumbing.Hash{localOID}, func(oid plumbing.Hash) error {
		localObjects[oid] = true
		return nil
	}); err != nil {
		return err
	}
	remoteObjects := map[plumbing.Hash]bool{}
	if err := commitgraph.IterObjectsInCommits(remote.Objects, knownRemoteOIDs, func(oid plumbing.Hash) error {
		remoteObjects[oid] = true
		return nil
	}); err != nil {
		return err
	}

	var toCopy []plumbing.Hash
	for oid := range localObjects {
		if !remoteObjects[oid] {
			toCopy = append(toCopy, oid)
		}
	}

	bar := progress.New(os.Stderr, "push", len(toCopy))
	for _, oid := range toCopy {
		if err := copyObjectFile(r.RepoDir, remote.RepoDir, oid); err != nil {
			return err
		}
		bar.Increment()
	}
	bar.Done()

	return remote.Refs.Update(plumbing.NewHashReference(refname, localOID))
}

func snapshotRefs(repo *Repository, prefix string) (map[string]plumbing.Hash, error) {
	out := map[string]plumbing.Hash{}
	err := repo.Refs.IterRefs(prefix, func(ref *plumbing.Reference) error {
		resolved, err := repo.Refs.Resolve(ref.Name())
		if err != nil {
			return err
		}
		out[ref.Name().BranchName()] = resolved.Hash()
		return nil
	})
	return out, err
}

func copyObjectFile(fromRepoDir, toRepoDir string, oid plumbing.Hash) error {
	src := filepath.Join(fromRepoDir, "objects", oid.String())
	dst := filepath.Join(toRepoDir, "objects", oid.String())
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("agit: open remote object %s: %w", oid, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("agit: create objects dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-obj-*")
	if err != nil {
		return fmt.Errorf("agit: stage copied object: %w", err)
	}
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("agit: copy object %s: %w", oid, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
