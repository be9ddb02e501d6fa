package object

import (
	"fmt"
	"strings"

	"github.com/agit-vcs/agit/modules/plumbing"
)

// Commit is the decoded form of a commit object: a tree, zero or more
// parents (order significant — the first is the mainline predecessor),
// and a free-form message.
type Commit struct {
	Tree    plumbing.Hash
	Parents []plumbing.Hash
	Message string
}

// Encode renders the commit in its wire format: header lines, a
// blank line, then the message verbatim.
func (c *Commit) Encode() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	b.WriteByte('\n')
	b.WriteString(c.Message)
	return []byte(b.String())
}

// DecodeCommit parses a commit object's payload: headers up to the first
// blank line (exactly one "tree", any number of "parent", in order),
// followed by the message. Unknown headers are a format error.
func DecodeCommit(oid plumbing.Hash, data []byte) (*Commit, error) {
	text := string(data)
	headerPart, message, ok := strings.Cut(text, "\n\n")
	if !ok {
		// Tolerate a message-less commit with no trailing blank-line
		// separator content (headers only, empty message).
		headerPart = strings.TrimSuffix(text, "\n")
		message = ""
	}
	c := &Commit{}
	sawTree := false
	for _, line := range strings.Split(headerPart, "\n") {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return nil, plumbing.NewErrMalformedObject(oid, "bad commit header line %q", line)
		}
		switch key {
		case "tree":
			if sawTree {
				return nil, plumbing.NewErrMalformedObject(oid, "duplicate tree header")
			}
			if !plumbing.ValidateHashHex(value) {
				return nil, plumbing.NewErrMalformedObject(oid, "bad tree oid %q", value)
			}
			c.Tree = plumbing.NewHash(value)
			sawTree = true
		case "parent":
			if !plumbing.ValidateHashHex(value) {
				return nil, plumbing.NewErrMalformedObject(oid, "bad parent oid %q", value)
			}
			c.Parents = append(c.Parents, plumbing.NewHash(value))
		default:
			return nil, plumbing.NewErrMalformedObject(oid, "unknown commit header %q", key)
		}
	}
	if !sawTree {
		return nil, plumbing.NewErrMalformedObject(oid, "commit missing tree header")
	}
	c.Message = message
	return c, nil
}
