package btargs

import "strings"

// FrameHeader is what a "#N ..." line says about its frame.
type FrameHeader struct {
	ID   string
	Name string
	// ArgsStart is the offset just past the '(' that opens the inline
	// argument list, or -1 when the line has none.
	ArgsStart int
}

// ParseFrameHeader accepts both "#0  func (...)" and
// "#0  0x00007f... in func (...)".
func ParseFrameHeader(line string) (FrameHeader, error) {
	idEnd := IndexOf(line, " ", 0)
	if idEnd <= 0 {
		return FrameHeader{}, ErrMalformedFrameID
	}

	header := FrameHeader{
		ID:        line[:idEnd],
		ArgsStart: -1,
	}

	start := skipSpaces(line, idEnd)
	if start == len(line) {
		return FrameHeader{}, ErrMissingFunctionName
	}

	if strings.HasPrefix(line[start:], "0x") {
		// Resolved address, the name follows "in ".
		start = skipSpaces(line, nextSpace(line, start))
		if !strings.HasPrefix(line[start:], "in ") || start+len("in ") == len(line) {
			return FrameHeader{}, ErrMissingInKeyword
		}
		start += len("in ")
	}

	end := nextSpace(line, start)
	header.Name = line[start:end]

	if open := IndexOf(line, "(", end); open >= 0 {
		header.ArgsStart = open + 1
	}

	return header, nil
}
