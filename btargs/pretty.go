package btargs

import "strings"

const indentUnit = "  "

// PrettyValue spreads a bracketed value over lines: each '(' or '[' opens
// an indentation level, each ',' inside brackets starts a new line and each
// ')' or ']' closes a level on a line of its own. Values without brackets
// are returned unchanged.
func PrettyValue(value string) string {
	if !strings.ContainsAny(value, "([") {
		return value
	}

	var b strings.Builder
	depth := 0

	newline := func() {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(indentUnit, depth))
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '(', '[':
			b.WriteByte(c)
			depth++
			newline()
			i = skipSpaces(value, i+1) - 1
		case ')', ']':
			if depth > 0 {
				depth--
			}
			newline()
			b.WriteByte(c)
		case ',':
			b.WriteByte(c)
			if depth > 0 {
				newline()
				i = skipSpaces(value, i+1) - 1
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
