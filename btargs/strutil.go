package btargs

import "strings"

// IndexOf returns the index of subStr in s, searching from position, or -1.
func IndexOf(s string, subStr string, position int) int {
	if position > len(s) {
		return -1
	}
	index := strings.Index(s[position:], subStr)
	if index < 0 {
		return index
	}
	return position + index
}

// skipSpaces returns the first offset at or after position that is not a space.
func skipSpaces(s string, position int) int {
	for position < len(s) && s[position] == ' ' {
		position++
	}
	return position
}

// nextSpace returns the offset of the next space at or after position,
// or len(s) when the rest of the line has none.
func nextSpace(s string, position int) int {
	index := IndexOf(s, " ", position)
	if index < 0 {
		return len(s)
	}
	return index
}
