package cobs_test

import (
	"bytes"
	"testing"

	"github.com/dcreager/cobs-checksum-go/cobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const maxBlockLiterals = 0xfe

// payloadGen produces payloads up to the default frame size ceiling, biased
// towards embedded sentinels and runs that land near a full block.
var payloadGen = rapid.Custom(func(t *rapid.T) []byte {
	smallChunk := rapid.SliceOfN(rapid.Byte(), 0, 16)
	sentinel := rapid.Just([]byte{cobs.Sentinel})
	fullRun := rapid.Map(
		rapid.IntRange(maxBlockLiterals-2, maxBlockLiterals+2),
		func(n int) []byte { return bytes.Repeat([]byte{0x01}, n) },
	)
	chunks := rapid.SliceOf(rapid.OneOf(smallChunk, sentinel, fullRun)).Draw(t, "chunks")
	// Decoded messages are never nil, so neither are the payloads.
	payload := []byte{}
	for _, chunk := range chunks {
		payload = append(payload, chunk...)
	}
	if len(payload) > cobs.MaxFrameSize-1 {
		payload = payload[:cobs.MaxFrameSize-1]
	}
	return payload
})

// literalIndices returns the positions of every literal (non-overhead) byte
// within a well-formed frame.
func literalIndices(frame []byte) []int {
	var result []int
	for i := 0; frame[i] != cobs.Sentinel; {
		code := int(frame[i])
		for j := 1; j < code; j++ {
			result = append(result, i+j)
		}
		i += code
	}
	return result
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := payloadGen.Draw(t, "payload")
		var d cobs.Decoder
		require.True(t, d.Decode(cobs.Encode(payload)))
		assert.Equal(t, payload, append([]byte{}, d.Message()...))
	})
}

func TestRoundTripUniformBytes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, cobs.MaxFrameSize-1).Draw(t, "payload")
		payload = append([]byte{}, payload...)
		var d cobs.Decoder
		require.NoError(t, d.DecodeFrame(cobs.Encode(payload)))
		assert.Equal(t, payload, append([]byte{}, d.Message()...))
	})
}

func TestUnstuffRecoversChecksum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := payloadGen.Draw(t, "payload")
		expected := append(append([]byte{}, payload...), cobs.Checksum(payload))
		assert.Equal(t, expected, cobs.Unstuff(cobs.Encode(payload)))
	})
}

func TestSentinelOnlyAtEnd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		encoded := cobs.Encode(payloadGen.Draw(t, "payload"))
		assert.Equal(t, len(encoded)-1, bytes.IndexByte(encoded, cobs.Sentinel))
	})
}

func TestEncodedLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := payloadGen.Draw(t, "payload")
		encoded := cobs.Encode(payload)
		assert.LessOrEqual(t, len(encoded), cobs.MaxEncodedLen(len(payload)))
	})
}

func TestEncodedLengthWithoutSentinels(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.ByteRange(1, 0xff), 0, cobs.MaxFrameSize-1).Draw(t, "payload")
		if cobs.Checksum(payload) == cobs.Sentinel {
			payload = append(payload, 0x01)
		}
		messageLen := len(payload) + 1
		expected := messageLen + messageLen/maxBlockLiterals + 2
		assert.Equal(t, expected, len(cobs.Encode(payload)))
		assert.Equal(t, expected, cobs.MaxEncodedLen(len(payload)))
	})
}

func TestSingleBitFlipIsDetected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := payloadGen.Draw(t, "payload")
		encoded := cobs.Encode(payload)
		literals := literalIndices(encoded)
		if len(literals) == 0 {
			// Nothing but overhead bytes: an empty payload.
			return
		}
		index := rapid.SampledFrom(literals).Draw(t, "index")
		bit := rapid.IntRange(0, 7).Draw(t, "bit")
		encoded[index] ^= 1 << uint(bit)

		var d cobs.Decoder
		assert.Equal(t, cobs.ErrChecksumMismatch, d.DecodeFrame(encoded))
		assert.Nil(t, d.Message())
	})
}

func TestRoundTripRandomStreams(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payloads := rapid.SliceOfN(payloadGen, 0, 8).Draw(t, "payloads")
		checkStreamRoundTrip(t, payloads)
	})
}
