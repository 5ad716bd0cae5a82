package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is a half-open byte range [Start, End) of a query hit in a text.
type Match struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Highlight returns the case-insensitive, non-overlapping occurrences of
// query in text, left to right. The renderer wraps these ranges in marks;
// an empty query yields no matches. Offsets index the original text, so
// they stay valid for runes whose byte length changes under case folding.
func Highlight(text, query string) []Match {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return nil
	}
	var out []Match
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, q); ok {
			out = append(out, Match{Start: i, End: end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return out
}

// matchAt reports whether the lowercased query runes occur at byte offset i
// of text, and the byte offset just past the match.
func matchAt(text string, i int, query []rune) (int, bool) {
	for _, want := range query {
		r, size := utf8.DecodeRuneInString(text[i:])
		if size == 0 {
			return 0, false
		}
		if unicode.ToLower(r) != want {
			return 0, false
		}
		i += size
	}
	return i, true
}
