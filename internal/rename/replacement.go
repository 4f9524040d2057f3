package rename

import (
	"regexp"
	"strings"
)

// replaceAll substitutes every match of re in src. The replacement uses the
// same references users type in browser find-and-replace boxes:
//
//	$$       a literal "$"
//	$&       the whole match
//	$`       the text before the match
//	$'       the text after the match
//	$1..$99  a numbered group (two digits win when that group exists)
//	$<name>  a named group; unknown names expand to ""
//
// Anything else, including references to groups that do not exist, is kept
// literally. This differs from regexp.Expand, where "$1x" names group "1x".
func replaceAll(re *regexp.Regexp, src, replacement string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	names := re.SubexpNames()
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		expand(&b, replacement, src, m, names)
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

func expand(b *strings.Builder, replacement, src string, m []int, names []string) {
	groups := len(m)/2 - 1

	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		if c != '$' || i+1 >= len(replacement) {
			b.WriteByte(c)
			continue
		}

		next := replacement[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(src[m[0]:m[1]])
			i++
		case next == '`':
			b.WriteString(src[:m[0]])
			i++
		case next == '\'':
			b.WriteString(src[m[1]:])
			i++
		case isDigit(next):
			if i+2 < len(replacement) && isDigit(replacement[i+2]) {
				n := int(next-'0')*10 + int(replacement[i+2]-'0')
				if n >= 1 && n <= groups {
					writeGroup(b, src, m, n)
					i += 2
					continue
				}
			}
			n := int(next - '0')
			if n >= 1 && n <= groups {
				writeGroup(b, src, m, n)
				i++
				continue
			}
			b.WriteByte('$')
		case next == '<' && hasNamedGroups(names):
			end := strings.IndexByte(replacement[i+2:], '>')
			if end == -1 {
				b.WriteByte('$')
				continue
			}
			name := replacement[i+2 : i+2+end]
			for idx, n := range names {
				if idx > 0 && n == name {
					writeGroup(b, src, m, idx)
					break
				}
			}
			i += end + 2
		default:
			b.WriteByte('$')
		}
	}
}

func writeGroup(b *strings.Builder, src string, m []int, n int) {
	start, end := m[2*n], m[2*n+1]
	if start < 0 {
		return
	}
	b.WriteString(src[start:end])
}

func hasNamedGroups(names []string) bool {
	for _, n := range names {
		if n != "" {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
