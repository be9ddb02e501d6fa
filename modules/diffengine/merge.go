package diffengine

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/agit-vcs/agit/modules/odb"
	"github.com/agit-vcs/agit/modules/plumbing"
)

// Conflict marker text bracketing an unresolved merge span.
const (
	conflictStart = "<<<<<<< HEAD\n"
	conflictMid   = "=======\n"
	conflictEnd   = ">>>>>>> other\n"
)

// BlobMergeFunc performs a three-way textual merge of the blobs named by
// base/head/other (any may be nil, meaning "absent on that side") and
// returns the merged bytes, with conflict markers left in place when the
// merge cannot be resolved automatically.
type BlobMergeFunc func(base, head, other *plumbing.Hash) ([]byte, error)

// DefaultBlobMerge performs a diff3-style chunking merge: it diffs each
// side against the base with go-difflib's SequenceMatcher, aligns the
// two diffs along the base's line axis, and emits stable spans verbatim
// and unstable spans as a conflict block.
func DefaultBlobMerge(store *odb.Store) BlobMergeFunc {
	return func(base, head, other *plumbing.Hash) ([]byte, error) {
		baseText, err := loadOrEmpty(store, base)
		if err != nil {
			return nil, err
		}
		headText, err := loadOrEmpty(store, head)
		if err != nil {
			return nil, err
		}
		otherText, err := loadOrEmpty(store, other)
		if err != nil {
			return nil, err
		}
		return mergeThreeWay(baseText, headText, otherText)
	}
}

type lineBlock struct {
	oStart, oEnd int
	lines        []string
}

func nonEqualBlocks(baseLines, sideLines []string) []lineBlock {
	m := difflib.NewMatcher(baseLines, sideLines)
	ops := m.GetOpCodes()
	blocks := make([]lineBlock, 0, len(ops))
	for _, op := range ops {
		if op.Tag == 'e' {
			continue
		}
		blocks = append(blocks, lineBlock{
			oStart: op.I1,
			oEnd:   op.I2,
			lines:  append([]string{}, sideLines[op.J1:op.J2]...),
		})
	}
	return blocks
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mergeThreeWay merges head and other against base, a line at a time.
func mergeThreeWay(base, head, other string) ([]byte, error) {
	baseLines := difflib.SplitLines(base)
	headLines := difflib.SplitLines(head)
	otherLines := difflib.SplitLines(other)

	headBlocks := nonEqualBlocks(baseLines, headLines)
	otherBlocks := nonEqualBlocks(baseLines, otherLines)

	var out []string
	o, hi, oi := 0, 0, 0
	for o < len(baseLines) || hi < len(headBlocks) || oi < len(otherBlocks) {
		aHas := hi < len(headBlocks) && headBlocks[hi].oStart == o
		bHas := oi < len(otherBlocks) && otherBlocks[oi].oStart == o

		switch {
		case aHas && bHas:
			a, b := headBlocks[hi], otherBlocks[oi]
			if linesEqual(a.lines, b.lines) && a.oEnd == b.oEnd {
				out = append(out, a.lines...)
			} else {
				out = append(out, conflictStart)
				out = append(out, a.lines...)
				out = append(out, conflictMid)
				out = append(out, b.lines...)
				out = append(out, conflictEnd)
			}
			o = maxInt(a.oEnd, b.oEnd)
			hi++
			oi++
		case aHas:
			a := headBlocks[hi]
			if oi < len(otherBlocks) && otherBlocks[oi].oStart < a.oEnd {
				b := otherBlocks[oi]
				out = append(out, conflictStart)
				out = append(out, a.lines...)
				out = append(out, conflictMid)
				out = append(out, b.lines...)
				out = append(out, conflictEnd)
				o = maxInt(a.oEnd, b.oEnd)
				oi++
			} else {
				out = append(out, a.lines...)
				o = a.oEnd
			}
			hi++
		case bHas:
			b := otherBlocks[oi]
			if hi < len(headBlocks) && headBlocks[hi].oStart < b.oEnd {
				a := headBlocks[hi]
				out = append(out, conflictStart)
				out = append(out, a.lines...)
				out = append(out, conflictMid)
				out = append(out, b.lines...)
				out = append(out, conflictEnd)
				o = maxInt(a.oEnd, b.oEnd)
				hi++
			} else {
				out = append(out, b.lines...)
				o = b.oEnd
			}
			oi++
		default:
			if o >= len(baseLines) {
				// Exhausted the base axis but a block still pending at
				// its tail (a pure trailing insertion); break to avoid
				// spinning.
				hi = len(headBlocks)
				oi = len(otherBlocks)
				continue
			}
			out = append(out, baseLines[o])
			o++
		}
	}
	return []byte(strings.Join(out, "")), nil
}

// MergeTrees computes the merged working-tree content for every path
// present in any of base, head or other. The result maps path to merged
// bytes; callers are responsible for writing it to the working tree and
// leaving conflicted files for the user to resolve.
func MergeTrees(base, head, other map[string]plumbing.Hash, blobMerge BlobMergeFunc) (map[string][]byte, error) {
	rows := CompareTrees(base, head, other)
	result := make(map[string][]byte, len(rows))
	for _, r := range rows {
		merged, err := blobMerge(r.OIDs[0], r.OIDs[1], r.OIDs[2])
		if err != nil {
			return nil, err
		}
		result[r.Path] = merged
	}
	return result, nil
}
