package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/taxonit/core"
)

func newLoadedIndex(t *testing.T, entries map[string]*core.Entry) *Index {
	t.Helper()
	ix, err := New()
	require.NoError(t, err)
	ix.Load(entries)
	return ix
}

func TestIndex_Load_NotationKeys(t *testing.T) {
	t.Run("standardized and original keys", func(t *testing.T) {
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"a": {ID: "a", Notation: "T3:--8", Pref: "Variant"},
		})

		assert.Equal(t, []string{"a"}, ix.NotationIDs("t3:-8"))
		assert.Equal(t, []string{"a"}, ix.NotationIDs("t3:--8"))
		assert.Equal(t, "T3:-8", ix.NotationDisplay("t3:-8"))
		assert.Equal(t, "T3:--8", ix.NotationDisplay("t3:--8"))
	})

	t.Run("variant records share a standardized key", func(t *testing.T) {
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"a": {ID: "a", Notation: "T3:--8"},
			"b": {ID: "b", Notation: "T3:-8"},
		})

		assert.Equal(t, []string{"a", "b"}, ix.NotationIDs("t3:-8"))
		assert.Equal(t, []string{"a"}, ix.NotationIDs("t3:--8"))
	})

	t.Run("numeric id used as notation", func(t *testing.T) {
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"780": {ID: "780", Pref: "Music"},
		})

		assert.Equal(t, []string{"780"}, ix.NotationIDs("780"))
	})

	t.Run("non-numeric id without notation is not indexed by code", func(t *testing.T) {
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"opaque": {ID: "opaque", Pref: "Music"},
		})

		assert.Empty(t, ix.NotationKeys())
	})
}

func TestIndex_Load_TitleIndex(t *testing.T) {
	t.Run("normalized title maps to id", func(t *testing.T) {
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"004": {ID: "004", Notation: "004", Pref: "Computer Science"},
		})

		id, ok := ix.TitleID("computer science")
		require.True(t, ok)
		assert.Equal(t, "004", id)
	})

	t.Run("colliding titles keep the last write", func(t *testing.T) {
		// Two entries normalize to the same title; the collision is accepted
		// and, with sorted-id processing, the higher id wins deterministically.
		ix := newLoadedIndex(t, map[string]*core.Entry{
			"a1": {ID: "a1", Notation: "100", Pref: "Philosophy"},
			"a2": {ID: "a2", Notation: "101", Pref: "philosophy"},
		})

		id, ok := ix.TitleID("philosophy")
		require.True(t, ok)
		assert.Equal(t, "a2", id)
	})
}

func TestIndex_Load_WordIndex(t *testing.T) {
	ix := newLoadedIndex(t, map[string]*core.Entry{
		"004": {
			ID:       "004",
			Notation: "004",
			Pref:     "Computer science",
			Scope: &core.Scope{
				ClassHere: core.StringList{"Class here works on computing"},
				Including: core.StringList{"data processing"},
				Notes:     core.StringList{"See also artificial intelligence"},
				SeeAlso:   core.StringList{"For mathematics, see 510"},
			},
		},
		"780": {ID: "780", Notation: "780", Pref: "Music"},
	})

	// Title words.
	assert.Equal(t, []string{"004"}, ix.WordIDs("computer"))
	assert.Equal(t, []string{"780"}, ix.WordIDs("music"))

	// Words from all four scope fields.
	assert.Equal(t, []string{"004"}, ix.WordIDs("computing"))
	assert.Equal(t, []string{"004"}, ix.WordIDs("data"))
	assert.Equal(t, []string{"004"}, ix.WordIDs("artificial"))
	assert.Equal(t, []string{"004"}, ix.WordIDs("mathematics"))

	// Stopwords never reach the index.
	assert.Nil(t, ix.WordIDs("the"))
	assert.Nil(t, ix.WordIDs("for"))
}

func TestIndex_Load_ReplacesPriorState(t *testing.T) {
	ix := newLoadedIndex(t, map[string]*core.Entry{
		"004": {ID: "004", Notation: "004", Pref: "Computer science"},
	})
	require.NotEmpty(t, ix.NotationIDs("004"))

	ix.Load(map[string]*core.Entry{
		"780": {ID: "780", Notation: "780", Pref: "Music"},
	})

	assert.Nil(t, ix.NotationIDs("004"), "old state must not survive a reload")
	assert.Equal(t, []string{"780"}, ix.NotationIDs("780"))
	assert.Equal(t, 1, ix.EntryCount())
}

func TestIndex_Load_Deterministic(t *testing.T) {
	entries := map[string]*core.Entry{
		"a1":  {ID: "a1", Notation: "T3:--8", Pref: "Shared Title"},
		"a2":  {ID: "a2", Notation: "T3:-8", Pref: "shared title"},
		"004": {ID: "004", Notation: "004", Pref: "Computer science"},
		"780": {ID: "780", Notation: "780", Pref: "Music", Scope: &core.Scope{Notes: core.StringList{"orchestral works"}}},
	}

	first := newLoadedIndex(t, entries)
	second := newLoadedIndex(t, entries)

	require.Equal(t, first.NotationKeys(), second.NotationKeys())
	require.Equal(t, first.TitleKeys(), second.TitleKeys())
	require.Equal(t, first.WordKeys(), second.WordKeys())

	for _, key := range first.NotationKeys() {
		assert.Equal(t, first.NotationIDs(key), second.NotationIDs(key))
		assert.Equal(t, first.NotationDisplay(key), second.NotationDisplay(key))
	}
	for _, title := range first.TitleKeys() {
		id1, _ := first.TitleID(title)
		id2, _ := second.TitleID(title)
		assert.Equal(t, id1, id2)
	}
	for _, word := range first.WordKeys() {
		assert.Equal(t, first.WordIDs(word), second.WordIDs(word))
	}
}

func TestIndex_Counts(t *testing.T) {
	ix := newLoadedIndex(t, map[string]*core.Entry{
		"004": {ID: "004", Notation: "004", Pref: "Computer science"},
	})

	notations, titles, words := ix.Counts()
	assert.Equal(t, 1, notations)
	assert.Equal(t, 1, titles)
	assert.Equal(t, 2, words) // "computer", "science"
	assert.Equal(t, 1, ix.EntryCount())
}
