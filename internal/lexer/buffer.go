package lexer

import "io"

// chunkSize is the number of bytes in each half of the twin buffer.
// Retraction never exceeds two bytes, and comments are skipped one byte at a
// time with refills, so comments may be of any length. A lexeme is read ahead
// of the head without refilling, so it is copied correctly only if it fits in
// the bytes already loaded; the DFA does not bound lexeme length, and the
// identifier length limits are checked only after a lexeme has been read.
const chunkSize = 50

// twinBuffer is a circular window of 2*chunkSize bytes over the source
// stream. At any quiescent point exactly one half contains the read head; the
// other half is stale and is refilled when the head crosses the boundary in
// either direction. The byte 0x00 never occurs in valid source and is used as
// the "no more input" sentinel.
type twinBuffer struct {
	buf  [2 * chunkSize]byte
	pos  int
	line int
	src  io.Reader
}

// newTwinBuffer creates a twin buffer over src and bootstraps it: both halves
// are zeroed, then each is filled in turn so that after construction the
// buffer holds the first 2*chunkSize bytes of the stream and the read head is
// at position 0 on line 1.
func newTwinBuffer(src io.Reader) *twinBuffer {
	tb := &twinBuffer{
		src:  src,
		line: 1,
	}

	// pretend the head is in the second half so the first refill targets the
	// first half, then move to the first half and fill the second.
	tb.pos = chunkSize
	tb.refill()
	tb.pos = 0
	tb.refill()

	return tb
}

// refill reads chunkSize bytes from the source into whichever half does NOT
// contain the read head. A short read at end of input pads the remainder of
// that half with the 0x00 sentinel.
func (tb *twinBuffer) refill() {
	var fillStart, fillEnd int
	if tb.pos >= chunkSize {
		fillStart, fillEnd = 0, chunkSize
	} else {
		fillStart, fillEnd = chunkSize, 2*chunkSize
	}

	n, err := io.ReadFull(tb.src, tb.buf[fillStart:fillEnd])
	if err != nil {
		for i := fillStart + n; i < fillEnd; i++ {
			tb.buf[i] = 0
		}
	}
}

// cur returns the byte under the read head.
func (tb *twinBuffer) cur() byte {
	return tb.buf[tb.pos]
}

// at returns the byte at an absolute buffer index.
func (tb *twinBuffer) at(i int) byte {
	return tb.buf[i]
}

// next returns the index one past i, wrapping around the circular window.
func next(i int) int {
	return (i + 1) % (2 * chunkSize)
}

// crossed reports whether moving the read head from before to after switched
// halves, meaning the half that was left behind is now stale and must be
// refilled before the head wraps back into it.
func crossed(before, after int) bool {
	return (before < chunkSize) != (after < chunkSize)
}

// setPos moves the read head to p, refilling if the move crossed the half
// boundary.
func (tb *twinBuffer) setPos(p int) {
	before := tb.pos
	tb.pos = p
	if crossed(before, p) {
		tb.refill()
	}
}

// exhausted reports whether the read head is on the end-of-input sentinel.
func (tb *twinBuffer) exhausted() bool {
	return tb.buf[tb.pos] == 0
}
