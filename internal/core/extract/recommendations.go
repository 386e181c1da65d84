package extract

import (
	"strings"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

const (
	movieLabel  = "movie:"
	reasonLabel = "reason:"
)

type movieLine struct {
	title string
	year  string
}

// ExtractRecommendations parses MOVIE/REASON blocks. MOVIE and REASON
// occurrences are collected independently (case-insensitive) and the Nth
// movie is paired with the Nth reason; pairing stops when either list
// runs out. Entries without a title or year are dropped.
func ExtractRecommendations(response string) []domain.RecommendedMovie {
	markers := tokenize(asciiLower(response), movieLabel, reasonLabel)
	movies := scanMovies(response, markers)
	reasons := scanReasons(response, markers)

	n := min(len(movies), len(reasons))
	out := make([]domain.RecommendedMovie, 0, n)
	for i := 0; i < n; i++ {
		title := stripQuotes(movies[i].title)
		if title == "" || movies[i].year == "" {
			continue
		}
		out = append(out, domain.RecommendedMovie{
			Title:  title,
			Year:   movies[i].year,
			Reason: reasons[i],
		})
	}
	return out
}

// scanMovies collects every "MOVIE: <title> (<yyyy>)" on a single line.
// A MOVIE label with no parenthesised year on its line is not a match.
func scanMovies(text string, markers []marker) []movieLine {
	var out []movieLine
	consumed := 0
	for _, m := range markers {
		if m.label != movieLabel || m.at < consumed {
			continue
		}
		lineEnd := strings.IndexByte(text[m.value:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += m.value
		}
		line := text[m.value:lineEnd]
		open := yearOpenParen(line)
		if open < 0 {
			continue
		}
		out = append(out, movieLine{
			title: strings.TrimSpace(line[:open]),
			year:  line[open+1 : open+5],
		})
		consumed = m.value + open + 6
	}
	return out
}

// yearOpenParen returns the index of the first "(" in line that starts a
// "(dddd)" group, or -1.
func yearOpenParen(line string) int {
	for i := 0; i+5 < len(line); i++ {
		if line[i] != '(' || line[i+5] != ')' {
			continue
		}
		if isDigits(line[i+1 : i+5]) {
			return i
		}
	}
	return -1
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// scanReasons collects REASON spans. A span runs from the label to the
// next MOVIE label or the end of the text, so a REASON label inside an
// earlier span is part of that span.
func scanReasons(text string, markers []marker) []string {
	var out []string
	consumed := 0
	for i, m := range markers {
		if m.label != reasonLabel || m.at < consumed {
			continue
		}
		end := len(text)
		for _, next := range markers[i+1:] {
			if next.label == movieLabel {
				end = next.at
				break
			}
		}
		out = append(out, strings.TrimSpace(text[m.value:end]))
		consumed = end
	}
	return out
}
