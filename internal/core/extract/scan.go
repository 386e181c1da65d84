// Package extract turns free-text completion output into typed records.
// Extraction never fails: missing or malformed sections degrade to empty
// fields or fewer records.
package extract

import (
	"sort"
	"strings"
)

// marker is one occurrence of a label token in the scanned text.
type marker struct {
	label string
	at    int // offset of the label's first byte
	value int // offset just past the label's colon
}

// tokenize returns every occurrence of each label, ordered by position.
// lower must be asciiLower(text) when the labels are lowercase, or text
// itself for case-sensitive matching.
func tokenize(lower string, labels ...string) []marker {
	var out []marker
	for _, label := range labels {
		for pos := 0; ; {
			i := strings.Index(lower[pos:], label)
			if i < 0 {
				break
			}
			at := pos + i
			out = append(out, marker{label: label, at: at, value: at + len(label)})
			pos = at + len(label)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out
}

// sectionBreaks returns the offsets of every newline that is immediately
// followed by an all-caps label and a colon, such as "\nTHEMES:".
func sectionBreaks(text string) []int {
	var out []int
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		j := i + 1
		for j < len(text) && text[j] >= 'A' && text[j] <= 'Z' {
			j++
		}
		if j > i+1 && j < len(text) && text[j] == ':' {
			out = append(out, i)
		}
	}
	return out
}

// asciiLower lowercases A-Z only, so byte offsets stay aligned with the
// original text.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// stripQuotes removes one pair of surrounding quote characters.
func stripQuotes(s string) string {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}
