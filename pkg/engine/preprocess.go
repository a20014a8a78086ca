package engine

import "strings"

// kwPrefix marks a keyword after preprocessing: :radius reads as the string
// "__kw_radius", so keywords never collide with script variables.
const kwPrefix = "__kw_"

// preprocessSource rewrites a script into plain zygomys syntax:
//
//   - :keyword becomes the string "__kw_keyword" (hyphens kept)
//   - segs-c style identifiers become segs_c; a minus between numbers or
//     after a space is left alone
//   - ; and ;; comments become // comments
//
// String literals pass through untouched. := is kept for assignment.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := source
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			j := skipString(b, i)
			out.WriteString(b[i:j])
			i = j
		case c == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			j := strings.IndexByte(b[i:], '\n')
			if j < 0 {
				j = len(b) - i
			}
			out.WriteString(b[i : i+j])
			i += j
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.WriteString(b[i+1 : j])
			out.WriteByte('"')
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipString returns the index just past the literal opening at i.
// Double-quoted literals honour backslash escapes; raw ones do not.
func skipString(b string, i int) int {
	quote := b[i]
	for j := i + 1; j < len(b); j++ {
		switch {
		case quote == '"' && b[j] == '\\':
			j++
		case b[j] == quote:
			return j + 1
		}
	}
	return len(b)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
