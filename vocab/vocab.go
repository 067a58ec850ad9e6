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


package vocab

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var rawTables []byte

type tables struct {
	Stopwords []string            `yaml:"stopwords"`
	Synonyms  map[string][]string `yaml:"synonyms"`
}

var (
	stopWords map[string]bool

	// canonical maps every synonym-table term (keys and variants alike) to
	// its canonical form.
	canonical map[string]string

	// terms holds every key and variant, sorted, for suggestion scans.
	terms []string
)

func init() {
	var t tables
	if err := yaml.Unmarshal(rawTables, &t); err != nil {
		panic("vocab: malformed embedded tables: " + err.Error())
	}

	stopWords = make(map[string]bool, len(t.Stopwords))
	for _, w := range t.Stopwords {
		stopWords[w] = true
	}

	canonical = make(map[string]string)
	for key, variants := range t.Synonyms {
		canonical[key] = key
		for _, v := range variants {
			canonical[v] = key
		}
	}

	terms = make([]string, 0, len(canonical))
	for term := range canonical {
		terms = append(terms, term)
	}
	sort.Strings(terms)
}

// IsStopWord reports whether w is in the fixed stopword set.
func IsStopWord(w string) bool {
	return stopWords[w]
}

// Canonical returns the canonical synonym-table term for word. The second
// return is false when the word appears in the table neither as a key nor
// as a variant.
func Canonical(word string) (string, bool) {
	c, ok := canonical[word]
	return c, ok
}

// Terms returns every synonym-table key and variant in sorted order. The
// returned slice is shared and must not be modified.
func Terms() []string {
	return terms
}
