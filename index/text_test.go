package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{name: "lowercase and trim", in: "  Computer Science  ", want: "computer science"},
		{name: "diacritics stripped", in: "Música clásica", want: "musica clasica"},
		{name: "ampersand", in: "Arts & crafts", want: "arts and crafts"},
		{name: "plus sign", in: "Mathematics + logic", want: "mathematics and logic"},
		{name: "w-slash", in: "Coffee w/ milk", want: "coffee with milk"},
		{name: "w-slash-o", in: "Bread w/o yeast", want: "bread without yeast"},
		{name: "etc with dot", in: "Pottery, vases, etc.", want: "pottery, vases, etcetera"},
		{name: "etc without dot", in: "pottery etc", want: "pottery etcetera"},
		{name: "etc inside a word untouched", in: "fetch sketches", want: "fetch sketches"},
		{name: "e.g.", in: "Trade, e.g. imports", want: "trade, for example imports"},
		{name: "i.e.", in: "Dairy, i.e. milk", want: "dairy, that is milk"},
		{name: "vs with dot", in: "Nature vs. nurture", want: "nature versus nurture"},
		{name: "vs without dot", in: "nature vs nurture", want: "nature versus nurture"},
		{name: "no dot form only", in: "Symphony no. 5", want: "symphony number 5"},
		{name: "bare no untouched", in: "no smoking", want: "no smoking"},
		{name: "co dot", in: "Smith co. records", want: "smith company records"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Arts & crafts",
		"Bread w/o yeast",
		"Coffee w/ milk",
		"Pottery, vases, etc.",
		"Trade, e.g. imports & exports",
		"Nature vs. nurture",
		"Symphony no. 5",
		"Música clásica",
		"  Mixed CASE  with   spaces ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", in)
	}
}

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "stopwords dropped",
			in:   "History of the World",
			want: []string{"history", "world"},
		},
		{
			name: "short runs dropped",
			in:   "Go to an art museum",
			want: []string{"art", "museum"},
		},
		{
			name: "digits split words",
			in:   "004.5 Data processing",
			want: []string{"data", "processing"},
		},
		{
			name: "replacement output is tokenized",
			in:   "Arts & crafts",
			want: []string{"arts", "crafts"},
		},
		{
			name: "nothing indexable",
			in:   "004.5 -- 12",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractWords(tt.in))
		})
	}
}
