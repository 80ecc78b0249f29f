package cobs

// Checksum returns the XOR of every byte in data.  The checksum of an empty
// slice is 0.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
