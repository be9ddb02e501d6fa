// Command agit is a thin CLI over pkg/agit, deliberately built on the
// standard library alone rather than a third-party CLI framework:
// subcommands are matched directly on os.Args[1] and take positional
// arguments only. See DESIGN.md for the rationale.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/agit-vcs/agit/modules/commitgraph"
	"github.com/agit-vcs/agit/modules/plumbing"
	"github.com/agit-vcs/agit/modules/repoctx"
	"github.com/agit-vcs/agit/modules/worktree"
	"github.com/agit-vcs/agit/pkg/agit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "agit:", err)
		os.Exit(1)
	}

	// The process-wide repository binding is established once here, at
	// the CLI's entry point, matching the single outermost scope the
	// original change_git_dir contextmanager held for the duration of a
	// command. pkg/agit.Repository itself takes its store paths
	// explicitly rather than consulting repoctx.Current — see
	// DESIGN.md's Open Question on repoctx vs. explicit dependency
	// injection — but the binding still needs to exist for any future
	// command or subagent that wants the ambient directory without
	// threading it through.
	err = repoctx.With(wd, func() error {
		return dispatch(os.Args[1], os.Args[2:])
	})
	if err != nil {
		logrus.Error(err)
		fmt.Fprintln(os.Stderr, "agit:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: agit <command> [args]

commands:
  init
  hash-object <file>
  cat-file <oid>
  write-tree
  read-tree <oid>
  add <path>...
  commit <message>
  log [start...]
  checkout <name>
  branch <name> [oid]
  tag <name> [oid]
  status
  reset <oid>
  merge <name>
  merge-base <a> <b>
  fetch <remote-dir>
  push <remote-dir> <refname>
  diff <from> <to>`)
}

func dispatch(cmd string, args []string) error {
	switch cmd {
	case "init":
		return cmdInit(args)
	case "hash-object":
		return cmdHashObject(args)
	case "cat-file":
		return cmdCatFile(args)
	case "write-tree":
		return cmdWriteTree(args)
	case "read-tree":
		return cmdReadTree(args)
	case "add":
		return cmdAdd(args)
	case "commit":
		return cmdCommit(args)
	case "log":
		return cmdLog(args)
	case "checkout":
		return cmdCheckout(args)
	case "branch":
		return cmdBranch(args)
	case "tag":
		return cmdTag(args)
	case "status":
		return cmdStatus(args)
	case "reset":
		return cmdReset(args)
	case "merge":
		return cmdMerge(args)
	case "merge-base":
		return cmdMergeBase(args)
	case "fetch":
		return cmdFetch(args)
	case "push":
		return cmdPush(args)
	case "diff":
		return cmdDiff(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openRepo() (*agit.Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return agit.Open(wd)
}

func cmdInit(_ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	_, err = agit.Init(wd)
	return err
}

func cmdHashObject(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hash-object <file>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	oid, err := r.Objects.PutBlob(data)
	if err != nil {
		return err
	}
	fmt.Println(oid)
	return nil
}

func cmdCatFile(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cat-file <oid>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	oid, err := plumbing.NewHashEx(args[0])
	if err != nil {
		return err
	}
	_, data, err := r.Objects.GetObject(oid, "")
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	return nil
}

func cmdWriteTree(_ []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	oid, err := worktree.WriteTree(r.Objects, r.WorkDir)
	if err != nil {
		return err
	}
	fmt.Println(oid)
	return nil
}

func cmdReadTree(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: read-tree <oid>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	oid, err := r.GetOID(args[0])
	if err != nil {
		return err
	}
	return worktree.ReadTree(r.Objects, r.WorkDir, oid)
}

func cmdAdd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <path>...")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Add(args)
}

func cmdCommit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: commit <message>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	oid, err := r.Commit(args[0])
	if err != nil {
		return err
	}
	fmt.Println(oid)
	return nil
}

func cmdLog(args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	starts := args
	if len(starts) == 0 {
		head, err := r.GetOID("@")
		if err != nil {
			return err
		}
		starts = []string{head.String()}
	}
	var oids []plumbing.Hash
	for _, s := range starts {
		oid, err := r.GetOID(s)
		if err != nil {
			return err
		}
		oids = append(oids, oid)
	}
	entries, err := r.Log(oids)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("commit %s\n\n%s\n\n", e.OID, e.Commit.Message)
	}
	return nil
}

func cmdCheckout(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: checkout <name>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Checkout(args[0])
}

func cmdBranch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: branch <name> [oid]")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	target := "@"
	if len(args) > 1 {
		target = args[1]
	}
	oid, err := r.GetOID(target)
	if err != nil {
		return err
	}
	return r.CreateBranch(args[0], oid)
}

func cmdTag(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tag <name> [oid]")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	target := "@"
	if len(args) > 1 {
		target = args[1]
	}
	oid, err := r.GetOID(target)
	if err != nil {
		return err
	}
	return r.CreateTag(args[0], oid)
}

func cmdStatus(_ []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	s, err := r.GetStatus()
	if err != nil {
		return err
	}
	if s.Detached {
		fmt.Printf("HEAD detached at %s\n", s.HEAD)
	} else {
		fmt.Printf("On branch %s\n", s.Branch)
	}
	if s.MergeInProgress {
		fmt.Println("merge in progress")
	}
	for _, c := range s.StagedChanges {
		fmt.Printf("staged:   %s: %s\n", c.Action, c.Path)
	}
	for _, c := range s.UnstagedChanges {
		fmt.Printf("unstaged: %s: %s\n", c.Action, c.Path)
	}
	return nil
}

func cmdReset(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reset <oid>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	oid, err := r.GetOID(args[0])
	if err != nil {
		return err
	}
	return r.Reset(oid)
}

func cmdMerge(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: merge <name>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	result, err := r.Merge(args[0])
	if err != nil {
		return err
	}
	switch {
	case result.NoOp:
		fmt.Println("already up to date")
	case result.FastForward:
		fmt.Println("fast-forward")
	case result.Conflict:
		fmt.Println("merge: conflicts recorded; resolve and commit")
	default:
		fmt.Println("merge: resolved cleanly; run commit to conclude")
	}
	return nil
}

func cmdMergeBase(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: merge-base <a> <b>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	a, err := r.GetOID(args[0])
	if err != nil {
		return err
	}
	b, err := r.GetOID(args[1])
	if err != nil {
		return err
	}
	base, ok, err := commitgraph.GetMergeBase(r.Objects, a, b)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no common ancestor")
	}
	fmt.Println(base)
	return nil
}

func cmdFetch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fetch <remote-dir>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Fetch(args[0])
}

func cmdPush(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: push <remote-dir> <refname>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Push(args[0], plumbing.ReferenceName(args[1]))
}

func cmdDiff(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: diff <from> <to>")
	}
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()
	out, err := r.Diff(args[0], args[1])
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
