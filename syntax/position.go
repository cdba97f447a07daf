package syntax

import (
	"sort"
	"unicode/utf8"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// lineIndex maps byte offsets of src to positions shifted by origin.
type lineIndex struct {
	src    string
	starts []int
	origin block.Position
}

func newLineIndex(src string, origin block.Position) lineIndex {
	starts := []int{0}

	for i := range len(src) {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return lineIndex{src: src, starts: starts, origin: origin}
}

func (x lineIndex) position(off int) block.Position {
	off = min(max(off, 0), len(x.src))
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > off }) - 1
	start := x.starts[line]

	return block.Position{
		Offset: off,
		Line:   line + 1,
		Column: utf8.RuneCountInString(x.src[start:off]) + 1,
	}.Add(x.origin)
}
