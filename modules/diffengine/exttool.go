package diffengine

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"

	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// NewExternalBlobDiff builds a BlobDiffFunc that shells out to
// commandLine (parsed into argv with shellquote) against two temp files
// holding each side's blob content. It falls back to fallback when
// commandLine is empty or stdout is not a terminal.
func NewExternalBlobDiff(store *odb.Store, fallback BlobDiffFunc, commandLine string) (BlobDiffFunc, error) {
	if commandLine == "" {
		return fallback, nil
	}
	argv, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("agit: parse diff tool command %q: %w", commandLine, err)
	}
	if len(argv) == 0 {
		return fallback, nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fallback, nil
	}

	return func(from, to *plumbing.Hash, path string) ([]byte, error) {
		fromFile, err := stageTemp(store, from)
		if err != nil {
			return nil, err
		}
		defer os.Remove(fromFile)
		toFile, err := stageTemp(store, to)
		if err != nil {
			return nil, err
		}
		defer os.Remove(toFile)

		args := append(append([]string{}, argv[1:]...), fromFile, toFile)
		cmd := exec.Command(argv[0], args...)
		cmd.Stderr = os.Stderr
		out, err := cmd.Output()
		// External diff tools conventionally exit non-zero when the
		// inputs differ; that is not a failure of the operation.
		if err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				return nil, fmt.Errorf("agit: run diff tool for %s: %w", path, err)
			}
		}
		return out, nil
	}, nil
}

// stageTemp writes the blob named by oid (or empty content, if nil) to
// a fresh temp file and returns its path. Removed by the caller once
// the external tool has run.
func stageTemp(store *odb.Store, oid *plumbing.Hash) (string, error) {
	f, err := os.CreateTemp("", "agit-difftool-*")
	if err != nil {
		return "", fmt.Errorf("agit: stage diff tool input: %w", err)
	}
	defer f.Close()
	if oid != nil {
		data, err := store.GetBlob(*oid)
		if err != nil {
			os.Remove(f.Name())
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("agit: write diff tool input: %w", err)
		}
	}
	return f.Name(), nil
}
