// Package patch splices replacement text into a source file in a single
// pass.
//
// Edits are expressed against the original text. A Patcher records the
// length change each applied edit introduced, keyed by the edit's
// original start, and translates later edits through that table, so no
// edit ever needs positions re-derived from the partially patched buffer.
package patch

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/broady/assertype"
)

// ErrOverlap is returned when an edit starts before the end of an edit
// that was already applied. Test with errors.Is.
var ErrOverlap = assertype.NewError(assertype.CodeOverlappingEdits, "edits overlap")

// Edit replaces the original byte range [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

type delta struct {
	at int
	n  int
}

// Patcher applies edits to one source text. The zero value is not usable;
// create one with New. A Patcher is not safe for concurrent use.
type Patcher struct {
	src     []byte
	buf     []byte
	deltas  []delta
	lastEnd int
}

// New returns a Patcher for src. src is not modified.
func New(src []byte) *Patcher {
	buf := make([]byte, len(src))
	copy(buf, src)
	return &Patcher{src: src, buf: buf}
}

// Apply splices e into the buffer. Edits must arrive in ascending order of
// their original start. Leading whitespace of the original range is kept:
// the splice starts at the first non-space byte, or at End if the range
// is all whitespace.
func (p *Patcher) Apply(e Edit) error {
	if e.Start < 0 || e.End < e.Start || e.End > len(p.src) {
		return assertype.Errorf(assertype.CodeInternal, "edit [%d, %d) out of range for %d bytes", e.Start, e.End, len(p.src))
	}
	if e.Start < p.lastEnd {
		return fmt.Errorf("%w: [%d, %d) starts before %d", ErrOverlap, e.Start, e.End, p.lastEnd)
	}

	start := p.skipSpace(e.Start, e.End)
	shift := p.offset(start)
	from, to := start+shift, e.End+shift

	out := make([]byte, 0, len(p.buf)-(to-from)+len(e.Text))
	out = append(out, p.buf[:from]...)
	out = append(out, e.Text...)
	out = append(out, p.buf[to:]...)
	p.buf = out

	p.deltas = append(p.deltas, delta{at: start, n: len(e.Text) - (e.End - start)})
	p.lastEnd = e.End
	return nil
}

// offset sums the deltas recorded at or before the original position pos.
func (p *Patcher) offset(pos int) int {
	sum := 0
	for _, d := range p.deltas {
		if d.at > pos {
			break
		}
		sum += d.n
	}
	return sum
}

// translate maps an original position at or after the last applied edit
// into the patched text.
func (p *Patcher) translate(pos int) int {
	return pos + p.offset(pos)
}

func (p *Patcher) skipSpace(start, end int) int {
	for start < end {
		r, size := utf8.DecodeRune(p.src[start:end])
		if !unicode.IsSpace(r) && r != '\uFEFF' {
			break
		}
		start += size
	}
	return start
}

// Bytes returns the patched text. The slice is owned by the Patcher and is
// replaced, not mutated, by later edits.
func (p *Patcher) Bytes() []byte {
	return p.buf
}

// Len reports how many edits have been applied.
func (p *Patcher) Len() int {
	return len(p.deltas)
}

// Apply applies edits, sorted by original start, to src and returns the
// patched text.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	p := New(src)
	for _, e := range edits {
		if err := p.Apply(e); err != nil {
			return nil, err
		}
	}
	return p.Bytes(), nil
}
