package cobs

import (
	"errors"
	"fmt"
)

// MaxFrameSize is the default ceiling on the size of a message (payload plus
// checksum byte).  Transports use a ceiling to notice when they have lost
// sync with the sender; Encode and Decode do not enforce it themselves.
const MaxFrameSize = 1024

// ErrFrameTooLarge is the error that is returned when a message would not fit
// under a frame size ceiling.
var ErrFrameTooLarge = errors.New("cobs: frame too large")

// CheckPayloadSize verifies that payload, together with its checksum byte,
// fits within max bytes.
func CheckPayloadSize(payload []byte, max int) error {
	if len(payload)+1 > max {
		return fmt.Errorf("%w: %d byte payload exceeds limit of %d", ErrFrameTooLarge, len(payload), max-1)
	}
	return nil
}
