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


package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/storage"
)

const (
	snapshotFile = "index.snap"
	sidecarFile  = "sources.snap"
)

var (
	snapshotMagic = []byte("MMIX1")
	sidecarMagic  = []byte("MMSC1")
)

// persistSnapshot writes the full entry set and the chunk→mail sidecar
// to dir using write-new-then-replace: both files are fully written
// under temporary names, then renamed over the live ones. A crash mid-
// persist leaves the previous snapshot authoritative.
func persistSnapshot(dir string, entries []*core.IndexEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIndexPersistence, err)
	}

	snapData := encodeSnapshot(entries)
	sideData := encodeSidecar(entries)

	snapTmp := filepath.Join(dir, snapshotFile+".tmp")
	sideTmp := filepath.Join(dir, sidecarFile+".tmp")

	if err := os.WriteFile(snapTmp, snapData, 0o644); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIndexPersistence, err)
	}
	if err := os.WriteFile(sideTmp, sideData, 0o644); err != nil {
		os.Remove(snapTmp)
		return fmt.Errorf("%w: %v", core.ErrIndexPersistence, err)
	}

	// Sidecar first: the snapshot is the authority, so it flips last
	if err := os.Rename(sideTmp, filepath.Join(dir, sidecarFile)); err != nil {
		os.Remove(snapTmp)
		os.Remove(sideTmp)
		return fmt.Errorf("%w: %v", core.ErrIndexPersistence, err)
	}
	if err := os.Rename(snapTmp, filepath.Join(dir, snapshotFile)); err != nil {
		os.Remove(snapTmp)
		return fmt.Errorf("%w: %v", core.ErrIndexPersistence, err)
	}

	return nil
}

// loadSnapshot reads the entry set from dir. Returns os.ErrNotExist
// (wrapped) when no snapshot has been persisted yet.
func loadSnapshot(dir string) ([]*core.IndexEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

// loadSidecar reads the chunk→mail citation map from dir.
func loadSidecar(dir string) (map[core.ID]*core.ChunkMeta, error) {
	data, err := os.ReadFile(filepath.Join(dir, sidecarFile))
	if err != nil {
		return nil, err
	}
	return decodeSidecar(data)
}

func encodeSnapshot(entries []*core.IndexEntry) []byte {
	var buf bytes.Buffer
	buf.Write(snapshotMagic)

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(entries)))
	buf.Write(count[:])

	for _, entry := range entries {
		buf.Write(storage.MarshalIndexEntry(entry))
	}
	return buf.Bytes()
}

func decodeSnapshot(data []byte) ([]*core.IndexEntry, error) {
	if len(data) < len(snapshotMagic)+8 || !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic) {
		return nil, ErrSnapshotCorrupt
	}
	offset := len(snapshotMagic)
	count := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	entries := make([]*core.IndexEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		entry, n, err := storage.UnmarshalIndexEntry(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrSnapshotCorrupt, i, err)
		}
		entries = append(entries, entry)
		offset += n
	}
	return entries, nil
}

func encodeSidecar(entries []*core.IndexEntry) []byte {
	var buf bytes.Buffer
	buf.Write(sidecarMagic)

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(entries)))
	buf.Write(count[:])

	for _, entry := range entries {
		buf.Write(storage.MarshalID(entry.Chunk.Id))
		buf.Write(storage.MarshalChunkMeta(&entry.Meta))
	}
	return buf.Bytes()
}

func decodeSidecar(data []byte) (map[core.ID]*core.ChunkMeta, error) {
	if len(data) < len(sidecarMagic)+8 || !bytes.Equal(data[:len(sidecarMagic)], sidecarMagic) {
		return nil, ErrSnapshotCorrupt
	}
	offset := len(sidecarMagic)
	count := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	sources := make(map[core.ID]*core.ChunkMeta, count)
	for i := uint64(0); i < count; i++ {
		id, n, err := core.IDMUS.Unmarshal(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: sidecar id %d: %v", ErrSnapshotCorrupt, i, err)
		}
		offset += n

		meta, n, err := storage.UnmarshalChunkMeta(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: sidecar meta %d: %v", ErrSnapshotCorrupt, i, err)
		}
		offset += n

		sources[id] = meta
	}
	return sources, nil
}
