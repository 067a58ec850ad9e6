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


package core

import (
	"fmt"
	"strings"
)

// Sentinel ids emitted by the page-merge tooling. They carry page context
// from the extraction run, not classification content.
const (
	sentinelContinuation = "__CONT__"
	sentinelPageLead     = "__PAGE__"
)

// IsSentinelID reports whether id marks a page-merge sentinel record.
func IsSentinelID(id string) bool {
	return id == sentinelContinuation || id == sentinelPageLead
}

// ValidateEntry validates an Entry according to the dataset contract.
//
// Validation rules:
//   - ID must not be empty
//   - ID must not be a page-merge sentinel
//
// NOT validated (all optional per the dataset contract):
//   - Notation (entries without a code are still keyword-searchable)
//   - Title candidates (an entry may carry none)
//   - Scope and Table
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyEntryID)
	}

	if IsSentinelID(entry.ID) {
		return fmt.Errorf("%w: %w (%s)", ErrInvalidEntry, ErrSentinelEntry, entry.ID)
	}

	return nil
}
