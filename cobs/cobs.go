package cobs

import (
	"bytes"
	"errors"
)

// Sentinel is the byte value that terminates every frame.  It never appears
// anywhere else within an encoded frame.
const Sentinel = 0x00

// maxBlockSize is the largest overhead byte.  A block with this overhead byte
// is "full": it carries maxBlockSize-1 literal bytes and was not cut short by
// an embedded sentinel.
const maxBlockSize = 0xff
const maxBlockLiterals = maxBlockSize - 1

var (
	// ErrEmptyMessage is the error that is returned when a frame does not
	// contain any content at all.  Every valid frame carries at least the
	// checksum byte.
	ErrEmptyMessage = errors.New("cobs: empty message")

	// ErrChecksumMismatch is the error that is returned when the checksum
	// byte recovered from a frame does not match its payload.
	ErrChecksumMismatch = errors.New("cobs: checksum mismatch")
)

// MaxEncodedLen returns the length of the longest frame that Encode can
// produce for a payload of payloadLen bytes, including the checksum byte and
// the trailing sentinel.  Frames are exactly this long unless embedded
// sentinels break up what would otherwise be a full block.
func MaxEncodedLen(payloadLen int) int {
	messageLen := payloadLen + 1
	return messageLen + messageLen/maxBlockLiterals + 2
}

// Encode returns a new frame containing payload followed by its checksum,
// stuffed so that the only sentinel byte is the last one.  Encode never fails;
// if your transport has a frame size ceiling, check it with CheckPayloadSize
// before calling Encode.
func Encode(payload []byte) []byte {
	return appendFrame(make([]byte, 0, MaxEncodedLen(len(payload))), payload)
}

// EncodeTo writes the frame for payload into an output buffer.  Each frame
// carries its own trailing sentinel, so you can write frames back to back
// without any separator.
func EncodeTo(payload []byte, buf *bytes.Buffer) {
	buf.Grow(MaxEncodedLen(len(payload)))
	buf.Write(appendFrame(buf.AvailableBuffer(), payload))
}

func appendFrame(dst []byte, payload []byte) []byte {
	sum := Checksum(payload)

	// overhead is the index of the current block's overhead byte, which we
	// fill in once we know how long the block is.
	overhead := len(dst)
	dst = append(dst, 0)
	code := byte(1)

	// The message we stuff is payload followed by the checksum byte.
	for i := 0; i <= len(payload); i++ {
		b := sum
		if i < len(payload) {
			b = payload[i]
		}

		if b != Sentinel {
			dst = append(dst, b)
			code++
		}

		if b == Sentinel || code == maxBlockSize {
			dst[overhead] = code
			overhead = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}

	dst[overhead] = code
	return append(dst, Sentinel)
}

type blockState uint8

const (
	awaitingOverhead blockState = iota
	copyingLiterals
)

// Unstuff reverses the byte stuffing of a frame, returning the payload and
// checksum bytes that it carries.  It does not validate the checksum; use a
// Decoder for that.  Unstuff stops at the first sentinel found where an
// overhead byte is expected, or at the end of frame if there isn't one.
func Unstuff(frame []byte) []byte {
	out := make([]byte, 0, len(frame))
	state := awaitingOverhead
	remaining := 0

	// The overhead byte of the previous block.  It can never legitimately be
	// the sentinel, so we use that to mean "no previous block".
	var previous byte = Sentinel

	for _, b := range frame {
		switch state {
		case copyingLiterals:
			out = append(out, b)
			remaining--
			if remaining == 0 {
				state = awaitingOverhead
			}

		case awaitingOverhead:
			if b == Sentinel {
				// End of frame.  The final block is never followed by an
				// embedded sentinel.
				return out
			}

			// A short block was cut off by a sentinel in the original
			// message, which we have to put back now that we know the block
			// wasn't the last one.
			if previous != Sentinel && previous < maxBlockSize {
				out = append(out, Sentinel)
			}

			previous = b
			remaining = int(b) - 1
			if remaining > 0 {
				state = copyingLiterals
			}
		}
	}

	return out
}

// Decoder decodes frames and holds on to the most recent payload that passed
// its checksum.  A Decoder is not safe for concurrent use; use one per stream.
type Decoder struct {
	message []byte
}

// DecodeFrame decodes a single frame and validates its checksum.  If the
// frame is valid, it replaces the Decoder's message with the frame's payload.
// Otherwise it returns ErrEmptyMessage or ErrChecksumMismatch and leaves the
// current message alone.
func (d *Decoder) DecodeFrame(frame []byte) error {
	decoded := Unstuff(frame)
	if len(decoded) == 0 {
		return ErrEmptyMessage
	}

	payload := decoded[:len(decoded)-1]
	received := decoded[len(decoded)-1]
	if Checksum(payload) != received {
		return ErrChecksumMismatch
	}

	d.message = payload
	return nil
}

// Decode decodes a single frame, reporting whether it was valid.  After a
// successful call, Message returns the frame's payload.
func (d *Decoder) Decode(frame []byte) bool {
	return d.DecodeFrame(frame) == nil
}

// Message returns the payload of the most recent valid frame, or nil if no
// frame has been decoded yet.  The result is only meaningful until the next
// call to Decode or DecodeFrame.
func (d *Decoder) Message() []byte {
	return d.message
}
