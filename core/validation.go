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
	"slices"
)

// ValidateMailRecord validates a MailRecord according to domain rules.
//
// Validation rules:
//   - Id must not be empty (it is transport-assigned and stable)
//   - Sender must not be empty
//   - Importance, if set, must be a known level
//   - Category, if set, must be a known category
//
// NOT validated (populated by enrichment):
//   - Summary and KeyInfo (optional until enrichment runs)
//   - Body (an empty body is legal; the normalizer falls back to HTML)
func ValidateMailRecord(record *MailRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMailRecord)
	}

	if record.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMailRecord, ErrEmptyMailId)
	}

	if record.Sender == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMailRecord, ErrEmptySender)
	}

	if record.Importance != "" {
		if err := ValidateImportance(record.Importance); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMailRecord, err)
		}
	}

	if record.Category != "" {
		if err := ValidateCategory(record.Category); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMailRecord, err)
		}
	}

	return nil
}

// ValidateImportance validates that an Importance has a known value.
func ValidateImportance(importance Importance) error {
	if !slices.Contains(Importances, importance) {
		return fmt.Errorf("%w: %q", ErrInvalidImportance, importance)
	}
	return nil
}

// ValidateCategory validates that a Category has a known value.
func ValidateCategory(category Category) error {
	if !slices.Contains(Categories, category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// ValidateChunk validates a Chunk before indexing.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrEmptyChunk)
	}
	if chunk.Text == "" {
		return ErrEmptyChunk
	}
	if chunk.MailId == "" {
		return fmt.Errorf("chunk %d: %w", chunk.Seq, ErrEmptyMailId)
	}
	return nil
}

// ParseImportance converts a raw model answer into an Importance,
// returning the default when the value is unknown.
func ParseImportance(raw string) Importance {
	imp := Importance(raw)
	if slices.Contains(Importances, imp) {
		return imp
	}
	return DefaultImportance
}

// ParseCategory converts a raw model answer into a Category,
// returning the default when the value is unknown.
func ParseCategory(raw string) Category {
	cat := Category(raw)
	if slices.Contains(Categories, cat) {
		return cat
	}
	return DefaultCategory
}
