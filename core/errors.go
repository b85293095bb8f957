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

import "errors"

// Pipeline error taxonomy. These sentinels classify failures so callers
// can apply the containment policy for each kind.
var (
	// ErrConnection indicates the mail transport is unreachable or
	// authentication failed.
	ErrConnection = errors.New("transport connection failed")

	// ErrClassificationParse indicates the model output could not be
	// parsed as structured data even after fallback recovery.
	ErrClassificationParse = errors.New("classification output not parseable")

	// ErrIndexPersistence indicates the index snapshot could not be written.
	ErrIndexPersistence = errors.New("index snapshot write failed")

	// ErrNotificationDelivery indicates a notification send failed after retry.
	ErrNotificationDelivery = errors.New("notification delivery failed")
)

// Domain validation errors
var (
	// ErrInvalidMailRecord indicates a MailRecord failed validation.
	ErrInvalidMailRecord = errors.New("invalid mail record")

	// ErrEmptyMailId indicates the Id field is empty.
	ErrEmptyMailId = errors.New("mail id cannot be empty")

	// ErrEmptySender indicates the Sender field is empty.
	ErrEmptySender = errors.New("sender cannot be empty")

	// ErrInvalidImportance indicates an unknown importance level.
	ErrInvalidImportance = errors.New("invalid importance level")

	// ErrInvalidCategory indicates an unknown category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrEmptyChunk indicates a chunk with no text.
	ErrEmptyChunk = errors.New("chunk text cannot be empty")
)
