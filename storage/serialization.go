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


package storage

import (
	"github.com/poiesic/mailmind/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalMailRecord serializes a MailRecord to bytes.
func MarshalMailRecord(record *core.MailRecord) []byte {
	buf := make([]byte, core.MailRecordMUS.Size(*record))
	core.MailRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMailRecord deserializes a MailRecord from bytes.
func UnmarshalMailRecord(data []byte) (*core.MailRecord, error) {
	record, _, err := core.MailRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalIndexEntry serializes an IndexEntry to bytes.
func MarshalIndexEntry(entry *core.IndexEntry) []byte {
	buf := make([]byte, core.IndexEntryMUS.Size(*entry))
	core.IndexEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalIndexEntry deserializes an IndexEntry from bytes.
func UnmarshalIndexEntry(data []byte) (*core.IndexEntry, int, error) {
	entry, n, err := core.IndexEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, n, err
	}
	return &entry, n, nil
}

// MarshalChunkMeta serializes a ChunkMeta to bytes.
func MarshalChunkMeta(meta *core.ChunkMeta) []byte {
	buf := make([]byte, core.ChunkMetaMUS.Size(*meta))
	core.ChunkMetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalChunkMeta deserializes a ChunkMeta from bytes.
func UnmarshalChunkMeta(data []byte) (*core.ChunkMeta, int, error) {
	meta, n, err := core.ChunkMetaMUS.Unmarshal(data)
	if err != nil {
		return nil, n, err
	}
	return &meta, n, nil
}
