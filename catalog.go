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


// Package taxonit is an in-memory search engine for classification
// taxonomies. A Catalog owns a loaded dataset, the derived indexes, and a
// searcher; Open assembles all three from a dataset file or manifest.
package taxonit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/taxonit/core"
	"github.com/poiesic/taxonit/index"
	"github.com/poiesic/taxonit/ingestion"
	"github.com/poiesic/taxonit/search"
)

// Default result caps, re-exported from the search package for callers that
// only import the facade.
const (
	DefaultMaxResults     = search.DefaultMaxResults
	DefaultMaxSuggestions = search.DefaultMaxSuggestions
)

// Catalog is the top-level handle over a loaded taxonomy: the entry mapping,
// the derived indexes, and a searcher bound to both. Once constructed it is
// read-only and safe for concurrent use.
type Catalog struct {
	entries  map[string]*core.Entry
	index    *index.Index
	searcher *search.Searcher
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	logger   *slog.Logger
	poolSize int
}

// WithLogger sets a custom logger for the catalog and every component it
// assembles. Default is slog.Default().
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPoolSize sets the worker pool size used while loading dataset sources.
func WithPoolSize(size int) CatalogOption {
	return func(o *catalogOptions) {
		o.poolSize = size
	}
}

// NewCatalog builds a catalog over an already-loaded entry mapping.
func NewCatalog(entries map[string]*core.Entry, opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	ix, err := index.New(index.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	ix.Load(entries)

	searcher, err := search.NewSearcher(entries, ix, search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Catalog{
		entries:  entries,
		index:    ix,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

// Open loads a dataset and builds a catalog over it. A path ending in .yaml
// or .yml is read as a source manifest; anything else is read as a single
// JSON dataset file.
func Open(ctx context.Context, path string, opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	loaderOpts := []ingestion.Option{ingestion.WithLogger(options.logger)}
	if options.poolSize > 0 {
		loaderOpts = append(loaderOpts, ingestion.WithPoolSize(options.poolSize))
	}
	loader, err := ingestion.NewLoader(loaderOpts...)
	if err != nil {
		return nil, err
	}
	defer loader.Release()

	manifest := ingestion.SingleSource(path)
	if isManifestPath(path) {
		manifest, err = ingestion.ReadManifest(path)
		if err != nil {
			return nil, err
		}
	}

	entries, err := loader.Load(ctx, manifest)
	if err != nil {
		return nil, err
	}

	return NewCatalog(entries, opts...)
}

func applyOptions(opts []CatalogOption) *catalogOptions {
	options := &catalogOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func isManifestPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// Search runs a query against the catalog. See search.Searcher.Search.
func (c *Catalog) Search(query string, maxResults int) []core.SearchResult {
	return c.searcher.Search(query, maxResults)
}

// SearchWithMonitor runs a query with observation hooks.
func (c *Catalog) SearchWithMonitor(query string, maxResults int, monitor search.SearchMonitor) []core.SearchResult {
	return c.searcher.SearchWithMonitor(query, maxResults, monitor)
}

// Suggest returns completion candidates for a partial query.
func (c *Catalog) Suggest(partial string, maxSuggestions int) []string {
	return c.searcher.Suggest(partial, maxSuggestions)
}

// FilterByTable post-filters search results on their table tag.
func (c *Catalog) FilterByTable(results []core.SearchResult, tableFilter string) []core.SearchResult {
	return c.searcher.FilterByTable(results, tableFilter)
}

// Entry returns the entry for an id, or nil.
func (c *Catalog) Entry(id string) *core.Entry {
	return c.entries[id]
}

// Size reports how many entries the catalog holds.
func (c *Catalog) Size() int {
	return len(c.entries)
}

// Stats reports the sizes of the derived index structures.
type Stats struct {
	Entries   int `json:"entries"`
	Notations int `json:"notations"`
	Titles    int `json:"titles"`
	Words     int `json:"words"`
}

// Stats returns the current index statistics.
func (c *Catalog) Stats() Stats {
	notations, titles, words := c.index.Counts()
	return Stats{
		Entries:   len(c.entries),
		Notations: notations,
		Titles:    titles,
		Words:     words,
	}
}
