package plumbing

import "strings"

// ValidateReferenceName rejects short names that would escape the
// reference namespace or collide with the path separator convention used
// by the filesystem-backed Reference Store: empty names, names with a "."
// or ".." component, and names containing NUL or whitespace.
func ValidateReferenceName(name string) bool {
	if len(name) == 0 || name[0] == '-' {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		switch part {
		case "", ".", "..":
			return false
		}
		for _, c := range []byte(part) {
			if c < 0x20 || c == 0x7f || c == ':' || c == '?' || c == '[' || c == '\\' || c == '^' || c == '~' || c == ' ' {
				return false
			}
		}
	}
	return true
}

// ValidateBranchName reports whether name is usable as the short name of
// refs/heads/<name>.
func ValidateBranchName(name string) bool { return ValidateReferenceName(name) }

// ValidateTagName reports whether name is usable as the short name of
// refs/tags/<name>.
func ValidateTagName(name string) bool { return ValidateReferenceName(name) }
