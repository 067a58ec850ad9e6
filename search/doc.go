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


// Package search resolves queries against a loaded taxonomy index.
//
// The Searcher type implements a dual-strategy algorithm:
//   - a query classifier decides whether the input looks like a
//     classification code or free text
//   - the notation path scores exact, prefix, and containment matches over
//     notation keys
//   - the keyword path scores titles, then accumulates per-word signals
//     (exact word hits, synonym-table hits, partial word overlap)
//
// Results are thresholded, ranked, deduplicated, and capped, and each
// carries a match-type label explaining why it matched.
package search
