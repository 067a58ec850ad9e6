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


package search

import (
	"regexp"
	"strings"
)

// QueryType says which scoring strategy runs for a query.
type QueryType int

const (
	// QueryTypeKeyword selects free-text scoring over titles and words.
	QueryTypeKeyword QueryType = iota
	// QueryTypeNotation selects classification-code scoring over notation keys.
	QueryTypeNotation
)

// String implements fmt.Stringer.
func (qt QueryType) String() string {
	if qt == QueryTypeNotation {
		return "notation"
	}
	return "keyword"
}

// notationPatterns are the classification-code shapes, tested in order.
// The table-reference pattern accepts dashes and dots after the colon so
// table subdivisions like "T3:-8" take the notation path.
var notationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,3}$`),           // bare class number
	regexp.MustCompile(`^\d{3}\.\d+$`),        // decimal subdivision
	regexp.MustCompile(`(?i)^t\d+:[-\d.]+$`),  // table reference
	regexp.MustCompile(`^\.\d+$`),             // bare decimal fragment
	regexp.MustCompile(`^\d{3}-\d{3}$`),       // class range
	regexp.MustCompile(`^\d+\.\d+-\d+\.\d+$`), // decimal range
	regexp.MustCompile(`^-\d+$`),              // leading-dash table number
	regexp.MustCompile(`^\d+[A-Z]$`),          // letter-suffixed number
}

// DetectQueryType decides whether a raw query is a classification code or
// free text. The decision is a hint, not a hard gate: both scoring paths
// consult the same indexes, and each carries a low-priority cross-check for
// the other kind of input.
func DetectQueryType(query string) QueryType {
	q := strings.TrimSpace(query)
	if q == "" {
		return QueryTypeKeyword
	}

	for _, p := range notationPatterns {
		if p.MatchString(q) {
			return QueryTypeNotation
		}
	}

	// Fallback heuristics for code shapes the patterns miss.
	if isAllDigits(q) {
		return QueryTypeNotation
	}
	if strings.Contains(q, ".") && isDigitsAndDots(q) {
		return QueryTypeNotation
	}

	return QueryTypeKeyword
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isDigitsAndDots(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return len(s) > 0
}
