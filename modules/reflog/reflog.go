// Package reflog is an optional, HEAD-only audit trail: an append-only
// log of HEAD moves, never consulted by any core operation and exposed
// only for inspection.
package reflog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agit-vcs/agit/modules/plumbing"
)

const (
	dirName  = "logs"
	fileName = "HEAD"
)

// RecordHEADMove appends one line to <repo>/logs/HEAD recording that op
// moved HEAD from "from" to "to", with the given message. A zero "from"
// records as plumbing.ZeroHash, matching an initial commit with no
// prior HEAD value.
func RecordHEADMove(repoDir string, op string, from, to plumbing.Hash, message string) error {
	dir := filepath.Join(repoDir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("agit: create reflog directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("agit: open reflog: %w", err)
	}
	defer f.Close()
	line := fmt.Sprintf("%s %s %s %s\n", from, to, op, message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("agit: append reflog: %w", err)
	}
	return nil
}

// Entry is one parsed line of the HEAD reflog.
type Entry struct {
	From    plumbing.Hash
	To      plumbing.Hash
	Op      string
	Message string
}

// Read parses every entry in <repo>/logs/HEAD, oldest first. Returns an
// empty slice if the reflog has never been written — its absence never
// affects correctness of any other operation.
func Read(repoDir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(repoDir, dirName, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("agit: read reflog: %w", err)
	}
	var entries []Entry
	for _, line := range splitLines(string(data)) {
		if line == "" {
			continue
		}
		var from, to, op, message string
		n, _ := fmt.Sscanf(line, "%s %s %s", &from, &to, &op)
		if n < 3 {
			continue
		}
		message = messageTail(line, from, to, op)
		entries = append(entries, Entry{
			From:    plumbing.NewHash(from),
			To:      plumbing.NewHash(to),
			Op:      op,
			Message: message,
		})
	}
	return entries, nil
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// messageTail strips the first three space-separated fields off line,
// preserving the remainder (the message) verbatim including any spaces
// it contains.
func messageTail(line, from, to, op string) string {
	prefix := from + " " + to + " " + op + " "
	if len(line) > len(prefix) {
		return line[len(prefix):]
	}
	return ""
}
