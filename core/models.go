package core

import (
	"encoding/json"
	"sort"
	"strings"
)

// Entry is one classification record: a class, subdivision, or table entry
// with an id, an optional notation, title candidates, and scope metadata.
// Entries are read-only to the search engine; the dataset mapping remains
// the sole owner of entry content.
type Entry struct {
	ID        string `json:"id"`
	Notation  string `json:"notation,omitempty"`
	Pref      Text   `json:"pref,omitempty"`
	PrefLabel Text   `json:"prefLabel,omitempty"`
	Title     Text   `json:"title,omitempty"`
	Label     Text   `json:"label,omitempty"`
	Scope     *Scope `json:"scope,omitempty"`
	Table     string `json:"table,omitempty"`
}

// ResolvedTitle resolves the display title through the fixed fallback chain
// pref, prefLabel, title, label. The first non-empty field wins. The chain
// is part of the ingestion contract: datasets from different extraction runs
// name the title field differently.
func (e *Entry) ResolvedTitle() string {
	for _, candidate := range []Text{e.Pref, e.PrefLabel, e.Title, e.Label} {
		if t := strings.TrimSpace(string(candidate)); t != "" {
			return t
		}
	}
	return ""
}

// ResolvedNotation returns the entry's classification code: the trimmed
// notation field, or the entry id when no notation is present and the id
// starts with a digit. Returns "" for entries without a usable code.
func (e *Entry) ResolvedNotation() string {
	if n := strings.TrimSpace(e.Notation); n != "" {
		return n
	}
	id := strings.TrimSpace(e.ID)
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		return id
	}
	return ""
}

// Text is a title value that may arrive either as a plain JSON string or as
// a language map ({"en": "Computer science"}) as emitted by the extraction
// pipeline. Language maps prefer the "en" value, then the lexicographically
// first language.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var byLang map[string]string
	if err := json.Unmarshal(data, &byLang); err != nil {
		return err
	}
	if v, ok := byLang["en"]; ok {
		*t = Text(v)
		return nil
	}
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	if len(langs) > 0 {
		*t = Text(byLang[langs[0]])
	}
	return nil
}

// StringList is a scope annotation value that may arrive as a single JSON
// string or as a list of strings. A scalar is wrapped into a one-element
// list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// Scope holds the structured usage annotations of an entry. All fields are
// optional.
type Scope struct {
	ClassHere StringList `json:"classHere,omitempty"`
	Including StringList `json:"including,omitempty"`
	Notes     StringList `json:"notes,omitempty"`
	SeeAlso   StringList `json:"seeAlso,omitempty"`
}

// Texts returns every scope annotation in field order (classHere, including,
// notes, seeAlso). Used by the indexer to feed the word index.
func (s *Scope) Texts() []string {
	if s == nil {
		return nil
	}
	texts := make([]string, 0, len(s.ClassHere)+len(s.Including)+len(s.Notes)+len(s.SeeAlso))
	for _, field := range []StringList{s.ClassHere, s.Including, s.Notes, s.SeeAlso} {
		texts = append(texts, field...)
	}
	return texts
}

// SearchResult is one ranked match: the entry id, its relevance score, and
// a label explaining why the entry matched. MatchType is informational
// metadata; it plays no part in ranking.
type SearchResult struct {
	EntryID   string  `json:"entryId"`
	Score     float64 `json:"score"`
	MatchType string  `json:"matchType"`
}
