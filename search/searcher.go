package search

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/poiesic/taxonit/core"
	"github.com/poiesic/taxonit/index"
	"github.com/poiesic/taxonit/vocab"
)

// DefaultMaxResults caps search output when the caller passes no limit.
const DefaultMaxResults = 50

// DefaultMaxSuggestions caps Suggest output when the caller passes no limit.
const DefaultMaxSuggestions = 10

// minScore is the inclusion threshold. Strict: a result scoring exactly
// minScore is discarded.
const minScore = 50.0

// Notation-path strategy scores. The exact hit is assigned outright; every
// later strategy only raises an entry's score via max.
const (
	scoreNotationExact    = 1000.0
	scoreNotationPrefix   = 900.0
	scoreNotationContains = 800.0
	scoreNotationReverse  = 700.0
)

// Keyword-path strategy scores. Word-level contributions accumulate per
// query word, then merge into the title scores via max.
const (
	scoreTitleExact       = 950.0
	scoreTitlePrefix      = 850.0
	scoreTitleContains    = 750.0
	scoreWordExact        = 600.0
	scoreWordSynonym      = 500.0
	scoreWordFuzzy        = 400.0
	scoreNotationFallback = 300.0
)

// fuzzyThreshold is the minimum length-ratio similarity for a partial word
// match to contribute.
const fuzzyThreshold = 0.6

// Searcher resolves free-text and classification-code queries against a
// loaded index, returning ranked matches with a label explaining why each
// matched.
//
// A Searcher is read-only over its entry mapping and index; one instance
// serves one session. It performs no I/O and never fails: the only empty
// outcome is an empty result slice.
type Searcher struct {
	entries map[string]*core.Entry
	index   *index.Index
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over an entry mapping and the index
// built from it.
func NewSearcher(entries map[string]*core.Entry, ix *index.Index, opts ...Option) (*Searcher, error) {
	if entries == nil {
		return nil, ErrEntriesRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		entries: entries,
		index:   ix,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search classifies the query and dispatches to the matching scoring
// strategy. This is the public entry point for callers; results are sorted
// by descending score with ties broken by ascending notation length, and
// capped at maxResults (DefaultMaxResults when maxResults <= 0).
func (s *Searcher) Search(query string, maxResults int) []core.SearchResult {
	return s.SearchWithMonitor(query, maxResults, nil)
}

// SearchWithMonitor is Search with observation hooks. The monitor receives
// callbacks at each stage; pass nil for no monitoring.
func (s *Searcher) SearchWithMonitor(query string, maxResults int, monitor SearchMonitor) []core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		// Whitespace-only queries short-circuit without touching any index.
		monitor.Finish(nil)
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	queryType := DetectQueryType(trimmed)
	monitor.Classified(trimmed, queryType)

	var results []core.SearchResult
	if queryType == QueryTypeNotation {
		results = s.searchNotation(trimmed, maxResults, monitor)
	} else {
		results = s.searchKeyword(trimmed, maxResults, monitor)
	}

	s.logger.Debug("search complete",
		"query", trimmed,
		"type", queryType.String(),
		"results", len(results),
	)
	monitor.Finish(results)
	return results
}

// searchNotation scores the query against notation keys. Strategies run in
// precedence order; each key contributes through exactly one of them.
func (s *Searcher) searchNotation(query string, maxResults int, monitor SearchMonitor) []core.SearchResult {
	q := strings.ToLower(query)
	scores := make(map[string]float64)

	for _, id := range s.index.NotationIDs(q) {
		scores[id] = scoreNotationExact
	}

	qLen := float64(len(q))
	for _, key := range s.index.NotationKeys() {
		if key == q {
			continue
		}
		keyLen := float64(len(key))
		switch {
		case strings.HasPrefix(key, q):
			raise(scores, s.index.NotationIDs(key), scoreNotationPrefix*qLen/keyLen)
		case strings.Contains(key, q):
			raise(scores, s.index.NotationIDs(key), scoreNotationContains*qLen/keyLen)
		case len(key) >= 2 && strings.Contains(q, key):
			raise(scores, s.index.NotationIDs(key), scoreNotationReverse*keyLen/qLen)
		}
	}
	monitor.AfterNotationScan(len(scores))

	return s.rank(scores, QueryTypeNotation, query, maxResults)
}

// searchKeyword scores the query against titles and the word index.
func (s *Searcher) searchKeyword(query string, maxResults int, monitor SearchMonitor) []core.SearchResult {
	normalized := index.Normalize(query)
	scores := make(map[string]float64)

	if normalized != "" {
		if id, ok := s.index.TitleID(normalized); ok {
			scores[id] = scoreTitleExact
		}

		qLen := float64(len(normalized))
		for _, title := range s.index.TitleKeys() {
			if title == normalized {
				continue
			}
			titleLen := float64(len(title))
			switch {
			case strings.HasPrefix(title, normalized):
				if id, ok := s.index.TitleID(title); ok {
					raiseOne(scores, id, scoreTitlePrefix*qLen/titleLen)
				}
			case strings.Contains(title, normalized):
				if id, ok := s.index.TitleID(title); ok {
					raiseOne(scores, id, scoreTitleContains*qLen/titleLen)
				}
			}
		}
	}
	monitor.AfterTitleScan(len(scores))

	// Per-word contributions accumulate additively across the query words,
	// then merge into the result set via max against the title scores.
	wordScores := make(map[string]float64)
	queryWords := index.ExtractWords(query)
	if len(queryWords) > 0 {
		wordCount := float64(len(queryWords))
		for _, word := range queryWords {
			for _, id := range s.index.WordIDs(word) {
				wordScores[id] += scoreWordExact / wordCount
			}

			if canonicalTerm, ok := vocab.Canonical(word); ok {
				for _, id := range s.index.WordIDs(canonicalTerm) {
					wordScores[id] += scoreWordSynonym / wordCount
				}
			}

			wLen := float64(len(word))
			for _, indexed := range s.index.WordKeys() {
				if indexed == word {
					continue
				}
				if !strings.Contains(indexed, word) && !strings.Contains(word, indexed) {
					continue
				}
				longest := float64(len(indexed))
				if wLen > longest {
					longest = wLen
				}
				similarity := wLen / longest
				if similarity > fuzzyThreshold {
					for _, id := range s.index.WordIDs(indexed) {
						wordScores[id] += scoreWordFuzzy * similarity / wordCount
					}
				}
			}
		}
	}
	for id, ws := range wordScores {
		raiseOne(scores, id, ws)
	}
	monitor.AfterWordScan(len(wordScores))

	// A numeric string typed as a keyword query still surfaces notation
	// hits, capped below genuine keyword signals.
	raise(scores, s.index.NotationIDs(strings.ToLower(query)), scoreNotationFallback)

	return s.rank(scores, QueryTypeKeyword, query, maxResults)
}

// rank applies the inclusion threshold, attaches match-type labels, sorts,
// and truncates. Ordering is fully deterministic: score descending, then
// notation length ascending, then entry id.
func (s *Searcher) rank(scores map[string]float64, queryType QueryType, rawQuery string, maxResults int) []core.SearchResult {
	results := make([]core.SearchResult, 0, len(scores))
	for id, score := range scores {
		if score <= minScore {
			continue
		}
		results = append(results, core.SearchResult{
			EntryID:   id,
			Score:     score,
			MatchType: s.matchType(queryType, id, rawQuery, score),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		li, lj := s.notationLen(results[i].EntryID), s.notationLen(results[j].EntryID)
		if li != lj {
			return li < lj
		}
		return results[i].EntryID < results[j].EntryID
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func (s *Searcher) notationLen(id string) int {
	entry := s.entries[id]
	if entry == nil {
		return 0
	}
	return len(entry.ResolvedNotation())
}

// Suggest collects completion candidates for a partial query: notation keys
// by prefix (mapped back to their stored display form), indexed words by
// prefix of the last query word, and synonym-table terms by prefix. Word and
// synonym suggestions are title-cased for display. Output is deduplicated,
// sorted, and capped at maxSuggestions.
func (s *Searcher) Suggest(partial string, maxSuggestions int) []string {
	trimmed := strings.TrimSpace(partial)
	if trimmed == "" {
		return nil
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	normalized := index.Normalize(trimmed)
	caser := cases.Title(language.English)
	seen := make(map[string]struct{})

	if normalized != "" {
		for _, key := range s.index.NotationKeys() {
			if strings.HasPrefix(key, normalized) {
				if display := s.index.NotationDisplay(key); display != "" {
					seen[display] = struct{}{}
				}
			}
		}

		for _, term := range vocab.Terms() {
			if strings.HasPrefix(term, normalized) {
				seen[caser.String(term)] = struct{}{}
			}
		}
	}

	if words := index.ExtractWords(trimmed); len(words) > 0 {
		last := words[len(words)-1]
		for _, word := range s.index.WordKeys() {
			if strings.HasPrefix(word, last) {
				seen[caser.String(word)] = struct{}{}
			}
		}
	}

	suggestions := make([]string, 0, len(seen))
	for suggestion := range seen {
		suggestions = append(suggestions, suggestion)
	}
	sort.Strings(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// FilterByTable post-filters results on the entry's table tag. The literal
// filter "T3" acts as a prefix filter (matches T3, T3A, T3B, ...); every
// other value requires an exact match. Untagged entries are dropped. An
// empty filter returns the input unchanged.
func (s *Searcher) FilterByTable(results []core.SearchResult, tableFilter string) []core.SearchResult {
	if tableFilter == "" {
		return results
	}

	filtered := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		entry := s.entries[r.EntryID]
		if entry == nil || entry.Table == "" {
			continue
		}
		if tableFilter == "T3" {
			if strings.HasPrefix(entry.Table, "T3") {
				filtered = append(filtered, r)
			}
			continue
		}
		if entry.Table == tableFilter {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func raise(scores map[string]float64, ids []string, score float64) {
	for _, id := range ids {
		raiseOne(scores, id, score)
	}
}

func raiseOne(scores map[string]float64, id string, score float64) {
	if score > scores[id] {
		scores[id] = score
	}
}
