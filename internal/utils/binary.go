package utils

// sniffLength defines how many leading bytes are inspected when detecting binary content.
const sniffLength = 50

// binaryControlCeiling is the highest byte value treated as a binary marker.
// Bytes 0x00 through 0x08 do not occur in text files.
const binaryControlCeiling = 0x08

// IsBinary reports whether the leading bytes of data contain a control byte
// that does not occur in text.
func IsBinary(data []byte) bool {
	limit := len(data)
	if limit > sniffLength {
		limit = sniffLength
	}
	for _, byteValue := range data[:limit] {
		if byteValue <= binaryControlCeiling {
			return true
		}
	}
	return false
}
