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
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/mailmind/ai"
	"github.com/poiesic/mailmind/core"
)

// placeholderText seeds a fresh index with one entry so similarity
// search never runs against an empty set.
const placeholderText = "mail index initialized"

// Manager owns the in-memory index and its persisted snapshot.
// Add and Rebuild hold the write lock for their full duration including
// persistence; Search runs under the read lock.
type Manager struct {
	mu      sync.RWMutex
	entries []*core.IndexEntry
	sources map[core.ID]*core.ChunkMeta

	embedder     ai.Embedder
	dir          string
	chunkSize    int
	chunkOverlap int
	lastPersist  time.Time
	logger       *slog.Logger
}

// Stats describes the current index state.
type Stats struct {
	// Entries is the number of indexed chunks, excluding the placeholder.
	Entries int

	// Mails is the number of distinct mails with indexed chunks.
	Mails int

	// LastPersist is when the snapshot was last written. Zero if the
	// index was loaded but not yet written this process lifetime.
	LastPersist time.Time
}

// Option configures a Manager.
type Option func(*Manager) error

// WithChunking overrides the chunk size and overlap.
func WithChunking(size, overlap int) Option {
	return func(m *Manager) error {
		if size > 0 {
			m.chunkSize = size
		}
		if overlap >= 0 && overlap < m.chunkSize {
			m.chunkOverlap = overlap
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger.With("component", "index")
		return nil
	}
}

// NewManager opens the index at dir, loading the persisted snapshot if
// one exists. With no snapshot, a fresh index holding one placeholder
// entry is created and persisted.
func NewManager(embedder ai.Embedder, dir string, opts ...Option) (*Manager, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if dir == "" {
		return nil, ErrDirRequired
	}

	m := &Manager{
		embedder:     embedder,
		dir:          dir,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		logger:       slog.Default().With("component", "index"),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	entries, err := loadSnapshot(dir)
	switch {
	case err == nil:
		m.entries = entries
		m.logger.Info("loaded index snapshot", "entries", len(entries))
	case errors.Is(err, os.ErrNotExist):
		m.entries = []*core.IndexEntry{placeholderEntry()}
		if persistErr := persistSnapshot(dir, m.entries); persistErr != nil {
			return nil, persistErr
		}
		m.lastPersist = time.Now().UTC()
		m.logger.Info("created fresh index", "dir", dir)
	default:
		// Corrupt snapshot: start fresh rather than refuse to run,
		// keeping the broken file out of the write path
		m.logger.Error("snapshot unreadable, starting fresh", "err", err)
		m.entries = []*core.IndexEntry{placeholderEntry()}
		if persistErr := persistSnapshot(dir, m.entries); persistErr != nil {
			return nil, persistErr
		}
		m.lastPersist = time.Now().UTC()
	}

	sources, err := loadSidecar(dir)
	if err != nil {
		// Rebuild the citation map from the loaded entries
		sources = make(map[core.ID]*core.ChunkMeta, len(m.entries))
		for _, entry := range m.entries {
			meta := entry.Meta
			sources[entry.Chunk.Id] = &meta
		}
	}
	m.sources = sources

	return m, nil
}

// Add indexes the given records incrementally and persists the updated
// snapshot. An embedding failure drops only the affected mail's chunks;
// a persistence failure fails the whole call and leaves both the
// in-memory index and the on-disk snapshot unchanged. Returns the
// number of records whose chunks were indexed.
func (m *Manager) Add(ctx context.Context, records []*core.MailRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	added, indexed := m.buildEntries(ctx, records)
	if len(added) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]*core.IndexEntry, 0, len(m.entries)+len(added))
	next = append(next, m.entries...)
	next = append(next, added...)

	if err := persistSnapshot(m.dir, next); err != nil {
		m.logger.Error("snapshot persist failed, keeping previous index", "err", err)
		return 0, err
	}

	m.entries = next
	for _, entry := range added {
		meta := entry.Meta
		m.sources[entry.Chunk.Id] = &meta
	}
	m.lastPersist = time.Now().UTC()
	m.logger.Info("indexed records", "records", indexed, "chunks", len(added))
	return indexed, nil
}

// Rebuild constructs an entirely new index from the given record set
// and atomically swaps it in place of the current one. The previous
// index stays authoritative if persistence fails.
func (m *Manager) Rebuild(ctx context.Context, records []*core.MailRecord) (int, error) {
	added, indexed := m.buildEntries(ctx, records)

	next := make([]*core.IndexEntry, 0, len(added)+1)
	next = append(next, placeholderEntry())
	next = append(next, added...)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := persistSnapshot(m.dir, next); err != nil {
		m.logger.Error("rebuild persist failed, keeping previous index", "err", err)
		return 0, err
	}

	m.entries = next
	m.sources = make(map[core.ID]*core.ChunkMeta, len(next))
	for _, entry := range next {
		meta := entry.Meta
		m.sources[entry.Chunk.Id] = &meta
	}
	m.lastPersist = time.Now().UTC()
	m.logger.Info("rebuilt index", "records", indexed, "chunks", len(added))
	return indexed, nil
}

// Search embeds the query and returns the k closest chunks by cosine
// similarity, ties broken by ascending mail id then chunk sequence for
// determinism.
func (m *Manager) Search(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return nil, ErrInvalidQuery
	}

	vector, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		entry *core.IndexEntry
		score float32
	}

	hits := make([]scored, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.Meta.MailId == "" {
			// Placeholder never surfaces in results
			continue
		}
		if len(entry.Vector) == 0 {
			continue
		}
		hits = append(hits, scored{entry: entry, score: cosineSimilarity(vector, entry.Vector)})
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if c := strings.Compare(a.entry.Meta.MailId, b.entry.Meta.MailId); c != 0 {
			return c
		}
		return a.entry.Chunk.Seq - b.entry.Chunk.Seq
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	results := make([]core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, core.SearchResult{
			Text:  hit.entry.Chunk.Text,
			Meta:  hit.entry.Meta,
			Score: hit.score,
		})
	}
	return results, nil
}

// SourceFor returns the citation metadata for a chunk id, if indexed.
func (m *Manager) SourceFor(id core.ID) (*core.ChunkMeta, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meta, ok := m.sources[id]
	if !ok {
		return nil, false
	}
	copied := *meta
	return &copied, true
}

// Stats returns counts describing the current index state.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mails := make(map[string]struct{})
	entries := 0
	for _, entry := range m.entries {
		if entry.Meta.MailId == "" {
			continue
		}
		entries++
		mails[entry.Meta.MailId] = struct{}{}
	}

	return Stats{
		Entries:     entries,
		Mails:       len(mails),
		LastPersist: m.lastPersist,
	}
}

// buildEntries chunks and embeds each record. Embedding failures abort
// only the affected mail's chunks. Returns the new entries and the
// number of records that contributed at least one chunk.
func (m *Manager) buildEntries(ctx context.Context, records []*core.MailRecord) ([]*core.IndexEntry, int) {
	var added []*core.IndexEntry
	indexed := 0

	for _, record := range records {
		chunks := splitRecord(record, m.chunkSize, m.chunkOverlap)
		if len(chunks) == 0 {
			continue
		}

		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Text
		}

		vectors, err := m.embedder.EmbedTexts(ctx, texts)
		if err != nil || len(vectors) != len(chunks) {
			m.logger.Warn("embedding failed, skipping mail's chunks",
				"mail", record.Id, "chunks", len(chunks), "err", err)
			continue
		}

		meta := metaFor(record)
		for i, chunk := range chunks {
			added = append(added, &core.IndexEntry{
				Chunk:  chunk,
				Vector: vectors[i],
				Meta:   meta,
			})
		}
		indexed++
	}

	return added, indexed
}

func placeholderEntry() *core.IndexEntry {
	return &core.IndexEntry{
		Chunk: core.Chunk{
			Id:   core.IDFromContent(placeholderText),
			Text: placeholderText,
		},
		Vector: make([]float32, 0),
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero when either vector has no magnitude.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
