// Package titlematch compares movie titles against loosely formatted listing names.
package titlematch

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Standalone "i" and "x" are left alone ("I, Robot", "American History X").
var roman = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var articles = []string{"the ", "a ", "an "}

// Trailing markers that listing names add to a film title.
var trailerSuffix = regexp.MustCompile(`(?i)[\s:|\-–]*(official\s+)?(uk\s+|us\s+|final\s+|teaser\s+)?(trailer|teaser)(\s*#?\d+)?\s*$`)

var yearSuffix = regexp.MustCompile(`^(.*?)\s*[\(\[]((?:19|20)\d{2})[\)\]]\s*$`)

// CleanTitle reduces a title to a comparable form: case-folded, accents removed,
// leading articles dropped per subtitle part, punctuation stripped, and
// roman numerals after the first word converted to digits.
func CleanTitle(title string) string {
	s := stripAccents(folder.String(title))

	s = strings.NewReplacer("&", " and ", "-", " ", "'", "", "’", "", ".", " ").Replace(s)

	parts := strings.Split(s, ":")
	for i, p := range parts {
		parts[i] = dropArticle(strings.TrimSpace(p))
	}
	s = strings.Join(parts, " ")

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)

	words := strings.Fields(s)
	for i := 1; i < len(words); i++ {
		if n, ok := roman[words[i]]; ok {
			words[i] = n
		}
	}
	return strings.Join(words, " ")
}

// SplitYear separates a trailing "(2021)" or "[2021]" from a name.
// It returns the trimmed title and 0 when no year is present.
func SplitYear(name string) (string, int) {
	m := yearSuffix.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return strings.TrimSpace(name), 0
	}
	year, _ := strconv.Atoi(m[2])
	return m[1], year
}

// StripTrailerSuffix removes "Official Trailer", "Teaser 2" and similar endings.
func StripTrailerSuffix(name string) string {
	return strings.TrimSpace(trailerSuffix.ReplaceAllString(name, ""))
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func dropArticle(s string) string {
	for _, a := range articles {
		if rest, ok := strings.CutPrefix(s, a); ok {
			return rest
		}
	}
	return s
}
