package btargs

import "strings"

type LineKind int

const (
	Unrecognized LineKind = iota
	ThreadHeader
	NoSymbolInfo
	FromMarker
	FrameStart
	NoLocals
	Binding
)

var lineKindNames = [...]string{
	Unrecognized: "Unrecognized",
	ThreadHeader: "ThreadHeader",
	NoSymbolInfo: "NoSymbolInfo",
	FromMarker:   "FromMarker",
	FrameStart:   "FrameStart",
	NoLocals:     "NoLocals",
	Binding:      "Binding",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return "LineKind(?)"
	}
	return lineKindNames[k]
}

// Classify decides what a single backtrace line is. Markers are matched as
// literal prefixes, except that "No locals" may be indented like the
// bindings it replaces.
func (m Markers) Classify(line string) LineKind {
	if strings.TrimSpace(line) == "" {
		return Unrecognized
	}

	switch {
	case strings.HasPrefix(line, m.Thread):
		return ThreadHeader
	case strings.HasPrefix(line, m.NoSymbol):
		return NoSymbolInfo
	case strings.HasPrefix(line, m.From):
		return FromMarker
	case line[0] == '#':
		return FrameStart
	case strings.HasPrefix(strings.TrimLeft(line, " \t"), m.NoLocals):
		return NoLocals
	}

	return Binding
}
