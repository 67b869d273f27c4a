package bufferutil

import "encoding/binary"

// ValueToBytes serializes an amount to its 8-byte little-endian wire format.
func ValueToBytes(val uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, val)
	return buf
}

// ValueFromBytes deserializes an 8-byte little-endian amount.
func ValueFromBytes(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// BoolToByte serializes a flag as exactly 0 or 1.
func BoolToByte(val bool) byte {
	if val {
		return 1
	}
	return 0
}

// BoolFromByte deserializes a flag byte; any non-zero value reads as true.
func BoolFromByte(b byte) bool {
	return b != 0
}
