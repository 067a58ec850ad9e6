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

import "errors"

var (
	// ErrManifestRequired is returned when a manifest is not provided.
	ErrManifestRequired = errors.New("manifest required")

	// ErrNoSources is returned when a manifest declares no source files.
	ErrNoSources = errors.New("manifest declares no sources")

	// ErrSourcePathRequired is returned when a manifest source has an empty path.
	ErrSourcePathRequired = errors.New("source path required")

	// ErrMalformedDataset is returned when a source file is neither a JSON
	// array of entries nor a JSON object keyed by entry id.
	ErrMalformedDataset = errors.New("malformed dataset file")
)
