package btargs

import (
	"strings"

	"github.com/pkg/errors"
)

// truncationSuffix is the length of the ellipsis the debugger writes right
// before the truncation marker.
const truncationSuffix = 3

// Argument is one name=value pair from an inline argument list.
type Argument struct {
	Name      string
	Value     string
	Truncated bool
}

// ParseInlineArguments parses the list starting at start, just past its '('.
// It returns the arguments and the offset just past the closing ')'.
// When an argument has no value the arguments parsed so far are returned
// together with ErrMissingArgumentValue.
func (m Markers) ParseInlineArguments(line string, start int) ([]Argument, int, error) {
	var args []Argument

	pos := start
	for pos < len(line) {
		pos = skipSpaces(line, pos)
		if pos < len(line) && line[pos] == ')' {
			return args, pos + 1, nil
		}

		eq := IndexOf(line, "=", pos)
		if eq < 0 || delimiterBefore(line, pos, eq) {
			name := line[pos:]
			if stop := strings.IndexAny(name, ",)"); stop >= 0 {
				name = name[:stop]
			}
			return args, len(line), errors.Wrapf(ErrMissingArgumentValue, "argument %q", name)
		}

		name := line[pos:eq]
		valueStart := eq + 1
		if annotated := name + m.EntryAnnotation + "="; strings.HasPrefix(line[valueStart:], annotated) {
			valueStart += len(annotated)
		}
		if valueStart >= len(line) {
			return args, len(line), errors.Wrapf(ErrMissingArgumentValue, "argument %q", name)
		}

		value, end, truncated := m.scanValue(line, valueStart)
		args = append(args, Argument{
			Name:      name,
			Value:     value,
			Truncated: truncated,
		})

		if end == len(line) {
			return args, end, nil
		}
		pos = end + 1
		if line[end] == ')' {
			return args, pos, nil
		}
	}

	return args, pos, nil
}

// delimiterBefore reports whether an argument separator or the list end
// comes before offset eq.
func delimiterBefore(line string, pos int, eq int) bool {
	return strings.IndexAny(line[pos:eq], ",)") >= 0
}

// scanValue scans a value from start up to the first ',' or ')' outside any
// bracket pair. It returns the value, the offset of that terminator (or
// len(line)) and whether the truncation marker was seen.
func (m Markers) scanValue(line string, start int) (string, int, bool) {
	depth := 0
	truncateAt := -1

	i := start
	for ; i < len(line); i++ {
		if len(m.Truncated) > 0 && strings.HasPrefix(line[i:], m.Truncated) {
			depth = 0
			truncateAt = i - truncationSuffix
			if truncateAt < start {
				truncateAt = start
			}
			i += len(m.Truncated) - 1
			continue
		}

		c := line[i]
		if c == ',' && depth == 0 {
			break
		}
		if c == ')' && depth == 0 {
			break
		}

		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		}
	}

	if truncateAt >= 0 {
		return line[start:truncateAt], i, true
	}
	return line[start:i], i, false
}
