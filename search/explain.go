package search

import (
	"strings"

	"github.com/poiesic/taxonit/index"
)

// Match-type labels. Informational metadata attached to each result; never
// used in ranking.
const (
	MatchExactNotation        = "exact_notation"
	MatchExactNotationKeyword = "exact_notation_keyword"
	MatchExactTitle           = "exact_title"

	MatchNotationPrefix   = "notation_prefix"
	MatchNotationContains = "notation_contains"
	MatchNotationPartial  = "notation_partial"
	MatchNotationWeak     = "notation_weak"

	MatchStrong  = "strong_match"
	MatchGood    = "good_match"
	MatchWord    = "word_match"
	MatchPartial = "partial_match"
	MatchWeak    = "weak_match"
)

// matchType assigns the explanation label for one result: exact notation
// and exact title are recognized outright, everything else is bucketed into
// path-specific score bands.
func (s *Searcher) matchType(queryType QueryType, id, rawQuery string, score float64) string {
	entry := s.entries[id]
	if entry != nil {
		if notation := entry.ResolvedNotation(); notation != "" && strings.EqualFold(notation, rawQuery) {
			if queryType == QueryTypeNotation {
				return MatchExactNotation
			}
			return MatchExactNotationKeyword
		}
		if title := entry.ResolvedTitle(); title != "" && index.Normalize(title) == index.Normalize(rawQuery) {
			return MatchExactTitle
		}
	}

	if queryType == QueryTypeNotation {
		switch {
		case score >= 900:
			return MatchNotationPrefix
		case score >= 700:
			return MatchNotationContains
		case score >= 500:
			return MatchNotationPartial
		default:
			return MatchNotationWeak
		}
	}

	switch {
	case score >= 800:
		return MatchStrong
	case score >= 600:
		return MatchGood
	case score >= 400:
		return MatchWord
	case score >= 200:
		return MatchPartial
	default:
		return MatchWeak
	}
}
