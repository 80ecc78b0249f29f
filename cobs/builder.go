package cobs

import (
	"bytes"
)

// FrameBuilder accumulates several messages in one buffer and frames them in a
// single pass.  Write each message's content through the embedded
// bytes.Buffer and mark its end with FinishMessage; content written after the
// last FinishMessage is not part of any frame.  Every message gets its own
// checksum and terminating sentinel, so the output of Encode is a stream that
// a Scanner splits back into the same messages.
type FrameBuilder struct {
	bytes.Buffer
	// ends holds the offset just past each finished message.  A message
	// starts where the previous one ends.
	ends []int
}

// FinishMessage ends the current message.  An empty message is allowed and
// encodes to a three-byte frame.
func (fb *FrameBuilder) FinishMessage() {
	fb.ends = append(fb.ends, fb.Len())
}

// Encode appends one frame per finished message to dest.  The builder is
// left unchanged, so calling Encode twice writes the frames twice.
func (fb *FrameBuilder) Encode(dest *bytes.Buffer) {
	content := fb.Bytes()

	size, start := 0, 0
	for _, end := range fb.ends {
		size += MaxEncodedLen(end - start)
		start = end
	}
	dest.Grow(size)

	start = 0
	for _, end := range fb.ends {
		EncodeTo(content[start:end], dest)
		start = end
	}
}

// Reset discards all content and finished messages.
func (fb *FrameBuilder) Reset() {
	fb.Buffer.Reset()
	fb.ends = fb.ends[:0]
}
