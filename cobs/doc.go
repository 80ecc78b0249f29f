// Package cobs provides a Consistent Overhead Byte Stuffing (COBS) framer
// with an appended single-byte XOR checksum.  Each encoded frame contains no
// `0x00` bytes except for a single trailing `0x00`, which delimits it from the
// next frame on a byte-oriented link such as a serial port.
package cobs
