// Package agit wires the object store, reference store, index,
// working-tree adapter, commit graph and diff engine together into the
// operations a CLI (or another Go program) actually calls — init,
// commit, checkout, reset, merge, branch/tag creation, status, log,
// show, diff, and the local replication verbs. One Repository type
// holds every store, with one method per user-facing verb.
package agit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/agit-vcs/agit/modules/config"
	"github.com/agit-vcs/agit/modules/errlog"
	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/refs"
)

// Repository binds one working directory to its .agit store tree and
// is the receiver for every orchestrator operation.
type Repository struct {
	WorkDir string
	RepoDir string // WorkDir/.agit

	Objects *odb.Store
	Refs    *refs.Store
	Config  config.Config
}

// Open binds workDir's .agit directory, loading its ambient config.
// The .agit directory must already exist; use Init to create a new
// repository.
func Open(workDir string) (*Repository, error) {
	repoDir := filepath.Join(workDir, ".agit")
	if _, err := os.Stat(repoDir); err != nil {
		return nil, errlog.Errorf("agit: open repository at %s: %v", workDir, err)
	}
	store, err := odb.Open(repoDir, odb.WithCache(true))
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadBaseline(repoDir)
	if err != nil {
		return nil, err
	}
	return &Repository{
		WorkDir: workDir,
		RepoDir: repoDir,
		Objects: store,
		Refs:    refs.Open(repoDir),
		Config:  cfg,
	}, nil
}

// Init creates a brand-new repository at workDir: objects/ and refs/,
// plus HEAD symbolically bound to refs/heads/<default branch>. The
// default branch name comes from config (falling back to "master").
func Init(workDir string) (*Repository, error) {
	repoDir := filepath.Join(workDir, ".agit")
	if err := os.MkdirAll(filepath.Join(repoDir, "objects"), 0o755); err != nil {
		return nil, fmt.Errorf("agit: init objects dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(repoDir, "refs"), 0o755); err != nil {
		return nil, fmt.Errorf("agit: init refs dir: %w", err)
	}
	store, err := odb.Open(repoDir, odb.WithCache(true))
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadBaseline(repoDir)
	if err != nil {
		return nil, err
	}
	refStore := refs.Open(repoDir)
	branch := cfg.Init.DefaultBranch
	if branch == "" {
		branch = "master"
	}
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	if err := refStore.Update(head); err != nil {
		return nil, err
	}
	logrus.WithField("repo", repoDir).Info("initialized empty repository")
	return &Repository{
		WorkDir: workDir,
		RepoDir: repoDir,
		Objects: store,
		Refs:    refStore,
		Config:  cfg,
	}, nil
}

// Close releases resources (the object store's cache) held by r.
func (r *Repository) Close() {
	r.Objects.Close()
}
