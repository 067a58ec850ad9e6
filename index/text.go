package index

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/taxonit/vocab"
)

// stripMarks decomposes text and removes combining diacritical marks, so
// "Médecine" and "Medecine" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Literal replacements applied in fixed order after lowercasing and mark
// stripping. The w/o pattern must run before w/, otherwise the longer form
// is corrupted. Abbreviations are word-boundary anchored; the dotted and
// bare forms share one pattern where both are accepted, which also keeps
// Normalize idempotent.
var replacements = []struct {
	pattern *regexp.Regexp
	with    string
}{
	{regexp.MustCompile(`\bw/o\b`), "without"},
	{regexp.MustCompile(`\bw/`), "with"},
	{regexp.MustCompile(`\betc\b\.?`), "etcetera"},
	{regexp.MustCompile(`\be\.g\.`), "for example"},
	{regexp.MustCompile(`\bi\.e\.`), "that is"},
	{regexp.MustCompile(`\bvs\b\.?`), "versus"},
	{regexp.MustCompile(`\bno\.`), "number"},
	{regexp.MustCompile(`\bco\.`), "company"},
}

// wordPattern extracts maximal runs of 3+ lowercase letters from normalized
// text.
var wordPattern = regexp.MustCompile(`[a-z]{3,}`)

// Normalize produces the canonical comparison form of titles and queries:
// trimmed, lowercased, diacritics stripped, and the fixed replacement table
// applied. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, "+", "and")
	for _, r := range replacements {
		s = r.pattern.ReplaceAllString(s, r.with)
	}
	return s
}

// ExtractWords normalizes s and returns its indexable tokens: runs of three
// or more lowercase letters with stopwords removed. Token order follows the
// text; duplicates are kept (callers that need a set deduplicate).
func ExtractWords(s string) []string {
	var words []string
	for _, w := range wordPattern.FindAllString(Normalize(s), -1) {
		if vocab.IsStopWord(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}
