// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/taxonit/core"
)

type idSet map[string]struct{}

func (s idSet) add(id string) {
	s[id] = struct{}{}
}

func (s idSet) sorted() []string {
	if len(s) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Index holds the three derived lookup structures over a taxonomy dataset:
//
//   - notation index: normalized notation key -> set of entry ids. An entry
//     is inserted under its standardized key ("--" collapsed to "-") and
//     additionally under its original lowercase form when the two differ,
//     so inconsistently formatted source records stay reachable both ways.
//   - title index: normalized title -> single entry id. Colliding titles
//     overwrite (last write wins); the collision is accepted, not deduplicated.
//   - word index: normalized word -> set of entry ids, fed by titles and all
//     scope annotations.
//
// The index never owns entry content; it stores identifier references only.
// All structures are rebuilt wholesale by Load and are immutable afterwards,
// so a fully loaded Index is safe for concurrent readers.
type Index struct {
	logger *slog.Logger

	notations map[string]idSet
	displays  map[string]string
	titles    map[string]string
	words     map[string]idSet

	// Key slices frozen at Load time, sorted, for deterministic scans.
	notationKeys []string
	titleKeys    []string
	wordKeys     []string

	entryCount int
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// New creates an empty index. Call Load before searching.
func New(opts ...Option) (*Index, error) {
	ix := &Index{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}
	ix.reset()
	return ix, nil
}

func (ix *Index) reset() {
	ix.notations = make(map[string]idSet)
	ix.displays = make(map[string]string)
	ix.titles = make(map[string]string)
	ix.words = make(map[string]idSet)
	ix.notationKeys = nil
	ix.titleKeys = nil
	ix.wordKeys = nil
	ix.entryCount = 0
}

// Load consumes the full entry mapping and rebuilds every index structure.
// A second Load replaces all prior state; it is never additive. Entries are
// processed in sorted id order so that rebuilds from the same dataset are
// byte-for-byte identical (title collisions and display capture must not
// depend on map iteration order).
func (ix *Index) Load(entries map[string]*core.Entry) {
	ix.reset()
	ix.entryCount = len(entries)

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := entries[id]
		if entry == nil {
			continue
		}

		ix.addNotation(id, entry.ResolvedNotation())

		if title := entry.ResolvedTitle(); title != "" {
			if normalized := Normalize(title); normalized != "" {
				ix.titles[normalized] = id
			}
			ix.addWords(id, title)
		}

		for _, text := range entry.Scope.Texts() {
			ix.addWords(id, text)
		}
	}

	ix.notationKeys = sortedSetKeys(ix.notations)
	ix.titleKeys = sortedStringKeys(ix.titles)
	ix.wordKeys = sortedSetKeys(ix.words)

	ix.logger.Info("index built",
		"entries", ix.entryCount,
		"notationKeys", len(ix.notations),
		"titleKeys", len(ix.titles),
		"wordKeys", len(ix.words),
	)
}

func (ix *Index) addNotation(id, notation string) {
	if notation == "" {
		return
	}

	standardized := strings.ReplaceAll(notation, "--", "-")
	standardizedKey := strings.ToLower(standardized)
	ix.insertNotation(standardizedKey, standardized, id)

	if originalKey := strings.ToLower(notation); originalKey != standardizedKey {
		ix.insertNotation(originalKey, notation, id)
	}
}

func (ix *Index) insertNotation(key, display, id string) {
	set, ok := ix.notations[key]
	if !ok {
		set = make(idSet)
		ix.notations[key] = set
		ix.displays[key] = display
	}
	set.add(id)
}

func (ix *Index) addWords(id, text string) {
	for _, word := range ExtractWords(text) {
		set, ok := ix.words[word]
		if !ok {
			set = make(idSet)
			ix.words[word] = set
		}
		set.add(id)
	}
}

// NotationIDs returns the sorted entry ids registered under the exact
// notation key, or nil.
func (ix *Index) NotationIDs(key string) []string {
	return ix.notations[key].sorted()
}

// NotationKeys returns all notation keys in sorted order. The slice is
// shared and must not be modified.
func (ix *Index) NotationKeys() []string {
	return ix.notationKeys
}

// NotationDisplay returns the stored display form for a notation key
// (the first source spelling recorded under that key), or "".
func (ix *Index) NotationDisplay(key string) string {
	return ix.displays[key]
}

// TitleID looks up the entry id registered under a normalized title.
func (ix *Index) TitleID(normalizedTitle string) (string, bool) {
	id, ok := ix.titles[normalizedTitle]
	return id, ok
}

// TitleKeys returns all normalized titles in sorted order. The slice is
// shared and must not be modified.
func (ix *Index) TitleKeys() []string {
	return ix.titleKeys
}

// WordIDs returns the sorted entry ids whose title or scope text contains
// the normalized word, or nil.
func (ix *Index) WordIDs(word string) []string {
	return ix.words[word].sorted()
}

// WordKeys returns all indexed words in sorted order. The slice is shared
// and must not be modified.
func (ix *Index) WordKeys() []string {
	return ix.wordKeys
}

// Counts reports the size of each index structure.
func (ix *Index) Counts() (notations, titles, words int) {
	return len(ix.notations), len(ix.titles), len(ix.words)
}

// EntryCount reports how many entries the last Load consumed.
func (ix *Index) EntryCount() int {
	return ix.entryCount
}

func sortedSetKeys(m map[string]idSet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
