package btargs

import "strings"

const bindingSeparator = " = "

// ParseBinding parses an indented "name = value" line. keep is false when
// the value is optimized out and the binding must not be stored.
func (m Markers) ParseBinding(line string) (name string, value string, keep bool, err error) {
	start := skipSpaces(line, 0)
	end := IndexOf(line, " ", start)
	if end < 0 || end == start {
		return "", "", false, ErrMalformedBinding
	}

	if !strings.HasPrefix(line[end:], bindingSeparator) || end+len(bindingSeparator) == len(line) {
		return "", "", false, ErrMalformedBinding
	}

	name = line[start:end]
	value = line[end+len(bindingSeparator):]
	if m.optimizedOut(value) {
		return name, "", false, nil
	}

	return name, value, true, nil
}

func (m Markers) optimizedOut(value string) bool {
	return strings.HasPrefix(value, m.OptimizedOut)
}
