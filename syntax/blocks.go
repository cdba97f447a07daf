package syntax

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// Occurrence locates one do-block in host source text. All offsets are byte
// offsets into the scanned text.
type Occurrence struct {
	// Start is the offset of the "do" keyword and End the offset after the
	// closing brace.
	Start, End int
	// BodyStart and BodyEnd delimit the text between the braces.
	BodyStart, BodyEnd int
	// Err is set when the block is not terminated; End is then the end of
	// the text.
	Err error
}

// Text returns the occurrence within src.
func (o Occurrence) Text(src string) string { return src[o.Start:o.End] }

// Body returns the text between the braces within src.
func (o Occurrence) Body(src string) string { return src[o.BodyStart:o.BodyEnd] }

// Blocks returns the outermost do-blocks of src in order. Occurrences of
// "do" inside literals or comments, used as a property name, or starting a
// do-while loop are skipped. Blocks nested inside a yielded block are not
// yielded separately.
func Blocks(src string) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		resume := 0
		prev := rune(0)

		block.ScanCode(src, func(off int, r rune, _ int) bool {
			before := prev
			prev = r

			if off < resume {
				return true
			}

			if r != 'd' || !strings.HasPrefix(src[off:], "do") {
				return true
			}

			if block.IsIdentifierPart(before) || before == '.' {
				return true
			}

			occ, ok := blockAt(src, off)
			if !ok {
				return true
			}

			resume = occ.End

			return yield(occ)
		})
	}
}

// blockAt reports the do-block whose keyword starts at off.
func blockAt(src string, off int) (Occurrence, bool) {
	i := off + len("do")

	if r, _ := utf8.DecodeRuneInString(src[i:]); block.IsIdentifierPart(r) {
		return Occurrence{}, false
	}

	i = skipSpaceAndComments(src, i)
	if i >= len(src) || src[i] != '{' {
		return Occurrence{}, false
	}

	occ := Occurrence{Start: off, BodyStart: i + 1, End: len(src), BodyEnd: len(src)}
	body := src[i:]
	closer := rune(0)

	complete := block.ScanCode(body, func(rel int, r rune, depth int) bool {
		if rel > 0 && depth == 0 && (r == '}' || r == ')' || r == ']') {
			closer = r
			occ.BodyEnd = i + rel
			occ.End = i + rel + 1

			return false
		}

		return true
	})

	switch {
	case !complete || closer == 0:
		occ.Err = ErrUnterminated
		occ.End, occ.BodyEnd = len(src), len(src)
	case closer != '}':
		occ.Err = ErrUnbalanced
	}

	if occ.Err == nil && isWhile(src, occ.End) {
		return Occurrence{}, false
	}

	return occ, true
}

// isWhile reports whether the text at off, after blanks, is a while keyword.
func isWhile(src string, off int) bool {
	i := skipSpaceAndComments(src, off)
	if !strings.HasPrefix(src[i:], "while") {
		return false
	}

	r, _ := utf8.DecodeRuneInString(src[i+len("while"):])

	return !block.IsIdentifierPart(r)
}

// skipSpaceAndComments returns the offset of the first byte at or after off
// that is neither white space nor part of a comment.
func skipSpaceAndComments(src string, off int) int {
	for off < len(src) {
		r, size := utf8.DecodeRuneInString(src[off:])

		switch {
		case unicode.IsSpace(r):
			off += size
		case strings.HasPrefix(src[off:], "//"):
			end := strings.IndexByte(src[off:], '\n')
			if end < 0 {
				return len(src)
			}

			off += end
		case strings.HasPrefix(src[off:], "/*"):
			end := strings.Index(src[off+2:], "*/")
			if end < 0 {
				return len(src)
			}

			off += end + 4
		default:
			return off
		}
	}

	return off
}
