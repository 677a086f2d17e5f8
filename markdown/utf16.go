package markdown

import "unicode/utf16"

// UTF16Len returns the length of s in UTF-16 code units, the unit every Docs
// index is expressed in.
func UTF16Len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

// utf16Offset converts a byte offset into s to a UTF-16 offset.
func utf16Offset(s string, byteOff int) int64 {
	if byteOff <= 0 {
		return 0
	}
	if byteOff > len(s) {
		byteOff = len(s)
	}
	return UTF16Len(s[:byteOff])
}
