// Package cos ("common os/string") holds the small, dependency-free string
// and number helpers the rest of the module reaches for repeatedly.
package cos

import "strconv"

// SplitTrimNonEmpty splits s on sep, trims each part, and drops empty
// results — the tagList parameter's split helper.
func SplitTrimNonEmpty(s string, sep byte) []string {
	out := make([]string, 0, 4)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			part := trim(s[start:i])
			if part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}

func trim(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// ParseU32 parses s as a decimal uint32, returning def on any failure —
// the get_number parameter semantics.
func ParseU32(s string, def uint32) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return def
	}
	return uint32(n)
}
