package highlight

import (
	"slices"
	"strings"
)

// Fragment stores a segment of text with an emphasis flag.
type Fragment struct {
	Text       string
	Emphasized bool
}

// MatchSpans returns the byte ranges of every non-overlapping, case-insensitive
// occurrence of query in text.
func MatchSpans(text, query string) [][2]int {
	if query == "" {
		return nil
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// Lowercasing can change byte lengths outside ASCII; spans would no longer line up.
	if len(lowerText) != len(text) {
		return nil
	}
	var spans [][2]int
	for offset := 0; offset <= len(lowerText)-len(lowerQuery); {
		idx := strings.Index(lowerText[offset:], lowerQuery)
		if idx < 0 {
			break
		}
		start := offset + idx
		spans = append(spans, [2]int{start, start + len(lowerQuery)})
		offset = start + len(lowerQuery)
	}
	return spans
}

// Split breaks text into plain and emphasized fragments. spans is not modified.
func Split(text string, spans [][2]int) []Fragment {
	if len(spans) == 0 {
		return []Fragment{{Text: text}}
	}
	ordered := slices.Clone(spans)
	slices.SortFunc(ordered, func(a, b [2]int) int { return a[0] - b[0] })

	var out []Fragment
	cursor := 0
	for _, span := range ordered {
		start := min(max(span[0], cursor), len(text))
		end := min(max(span[1], start), len(text))
		out = push(out, Fragment{Text: text[cursor:start]})
		out = push(out, Fragment{Text: text[start:end], Emphasized: true})
		cursor = end
	}
	return push(out, Fragment{Text: text[cursor:]})
}

// Fragments is MatchSpans followed by Split.
func Fragments(text, query string) []Fragment {
	return Split(text, MatchSpans(text, query))
}

// push appends frag, merging it into the previous fragment when emphasis matches.
func push(list []Fragment, frag Fragment) []Fragment {
	if frag.Text == "" {
		return list
	}
	if n := len(list); n > 0 && list[n-1].Emphasized == frag.Emphasized {
		list[n-1].Text += frag.Text
		return list
	}
	return append(list, frag)
}
