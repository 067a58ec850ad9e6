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
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source is one dataset file declared in a manifest. Table, when set, is
// stamped onto every entry from the file that does not carry its own table
// tag.
type Source struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table,omitempty"`
}

// Manifest describes a dataset assembled from several source files. Sources
// are merged in declaration order; an entry id appearing in more than one
// file resolves to the last file that defines it.
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if len(m.Sources) == 0 {
		return ErrNoSources
	}
	for i, src := range m.Sources {
		if src.Path == "" {
			return fmt.Errorf("%w: source %d", ErrSourcePathRequired, i)
		}
	}
	return nil
}

// SingleSource wraps one dataset file into a manifest.
func SingleSource(path string) *Manifest {
	return &Manifest{Sources: []Source{{Path: path}}}
}

// ReadManifest parses a YAML manifest file. Relative source paths are
// resolved against the manifest's own directory, so a manifest can travel
// with its dataset files.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, src := range m.Sources {
		if !filepath.IsAbs(src.Path) {
			m.Sources[i].Path = filepath.Join(base, src.Path)
		}
	}
	return &m, nil
}
