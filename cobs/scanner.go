package cobs

import (
	"bytes"
)

// Scanner splits a buffer containing any number of frames into the individual
// frames.  Because the sentinel only ever appears at the end of a frame, a
// Scanner can start anywhere in a stream: any garbage before the first
// sentinel turns into a frame that almost certainly fails its checksum, and
// the frames after it are unaffected.
type Scanner struct {
	buf   []byte
	frame []byte
}

// Reset prepares the Scanner to split buf into frames.
func (s *Scanner) Reset(buf []byte) {
	s.buf = buf
	s.frame = nil
}

// Next advances to the next frame, returning false when there are no complete
// frames left.  Empty frames (a sentinel immediately following another one)
// are skipped.
func (s *Scanner) Next() bool {
	for {
		end := bytes.IndexByte(s.buf, Sentinel)
		if end == -1 {
			s.frame = nil
			return false
		}
		frame := s.buf[:end+1]
		s.buf = s.buf[end+1:]
		if end > 0 {
			s.frame = frame
			return true
		}
	}
}

// Frame returns the current frame, including its trailing sentinel.
func (s *Scanner) Frame() []byte {
	return s.frame
}

// Remaining returns the bytes after the last complete frame.  Once Next
// returns false, these are the start of a frame that hasn't been fully
// received yet.
func (s *Scanner) Remaining() []byte {
	return s.buf
}

// Decode decodes the current frame using d.
func (s *Scanner) Decode(d *Decoder) error {
	return d.DecodeFrame(s.frame)
}
