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


package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/taxonit/core"
)

// Loader reads dataset source files and assembles the in-memory entry
// mapping. Source files parse concurrently on a worker pool; per-record
// problems (sentinel artifacts, missing ids) are skipped with a log line and
// never fail the load.
type Loader struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent source parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new dataset loader.
func NewLoader(opts ...Option) (*Loader, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Load parses every source in the manifest and merges the results in
// declaration order, so an entry id defined by several sources resolves to
// the last source that defines it.
func (l *Loader) Load(ctx context.Context, manifest *Manifest) (map[string]*core.Entry, error) {
	if manifest == nil {
		return nil, ErrManifestRequired
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	results := make([]map[string]*core.Entry, len(manifest.Sources))
	errs := make([]error, len(manifest.Sources))

	var wg sync.WaitGroup
	for i, src := range manifest.Sources {
		wg.Add(1)
		if submitErr := l.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = l.loadSource(ctx, src)
		}); submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := make(map[string]*core.Entry)
	for _, sourceEntries := range results {
		for id, entry := range sourceEntries {
			merged[id] = entry
		}
	}

	l.logger.Info("dataset loaded",
		"sources", len(manifest.Sources),
		"entries", len(merged),
	)
	return merged, nil
}

// LoadFile parses a single dataset file without a manifest.
func (l *Loader) LoadFile(ctx context.Context, path string) (map[string]*core.Entry, error) {
	return l.Load(ctx, SingleSource(path))
}

func (l *Loader) loadSource(ctx context.Context, src Source) (map[string]*core.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", src.Path, err)
	}

	parsed, err := parseDataset(raw)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Path, err)
	}

	entries := make(map[string]*core.Entry, len(parsed))
	skipped := 0
	for _, entry := range parsed {
		if err := core.ValidateEntry(entry); err != nil {
			skipped++
			if errors.Is(err, core.ErrSentinelEntry) {
				l.logger.Debug("skipping extraction artifact", "path", src.Path, "id", entry.ID)
			} else {
				l.logger.Warn("skipping invalid entry", "path", src.Path, "err", err)
			}
			continue
		}
		if entry.Table == "" {
			entry.Table = src.Table
		}
		entries[entry.ID] = entry
	}

	l.logger.Info("source loaded",
		"path", src.Path,
		"entries", len(entries),
		"skipped", skipped,
	)
	return entries, nil
}

// parseDataset accepts the two shapes extraction runs have produced: a JSON
// array of entry records, or a JSON object keyed by entry id. In the object
// form a record missing its id field inherits the object key.
func parseDataset(raw []byte) ([]*core.Entry, error) {
	var list []*core.Entry
	if err := json.Unmarshal(raw, &list); err == nil {
		entries := make([]*core.Entry, 0, len(list))
		for _, entry := range list {
			if entry != nil {
				entries = append(entries, entry)
			}
		}
		return entries, nil
	}

	var byID map[string]*core.Entry
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, ErrMalformedDataset
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]*core.Entry, 0, len(byID))
	for _, id := range ids {
		entry := byID[id]
		if entry == nil {
			continue
		}
		if entry.ID == "" {
			entry.ID = id
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
