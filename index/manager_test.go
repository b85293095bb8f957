package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/mailmind/ai/mock"
	"github.com/poiesic/mailmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id, subject, body string) *core.MailRecord {
	return &core.MailRecord{
		Id:         id,
		Subject:    subject,
		Sender:     "alice@example.com",
		Date:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Body:       body,
		Importance: core.ImportanceMedium,
		Category:   core.CategoryWork,
	}
}

// axisEmbedder maps texts onto fixed axes so similarity is controlled
// by the test, not by hashing.
func axisEmbedder(axes map[string][]float32, fallback []float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	vectorFor := func(text string) []float32 {
		for needle, vector := range axes {
			if needle != "" && strings.Contains(text, needle) {
				return vector
			}
		}
		return fallback
	}
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vectorFor(text), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = vectorFor(text)
		}
		return vectors, nil
	}
	return embedder
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	_, err := NewManager(nil, t.TempDir())
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewManager(mock.NewMockEmbedder(), "")
	assert.ErrorIs(t, err, ErrDirRequired)
}

func TestNewManagerFreshIndex(t *testing.T) {
	dir := t.TempDir()

	manager, err := NewManager(mock.NewMockEmbedder(), dir)
	require.NoError(t, err)

	stats := manager.Stats()
	assert.Equal(t, 0, stats.Entries, "placeholder must not count as an entry")
	assert.Equal(t, 0, stats.Mails)
	assert.False(t, stats.LastPersist.IsZero(), "fresh index is persisted immediately")

	// Snapshot and sidecar exist on disk
	_, err = os.Stat(filepath.Join(dir, "index.snap"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "sources.snap"))
	assert.NoError(t, err)
}

func TestSearchOnFreshIndexReturnsNothing(t *testing.T) {
	manager, err := NewManager(mock.NewMockEmbedder(), t.TempDir())
	require.NoError(t, err)

	results, err := manager.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results, "placeholder entry must never surface")
}

func TestSearchInvalidQuery(t *testing.T) {
	manager, err := NewManager(mock.NewMockEmbedder(), t.TempDir())
	require.NoError(t, err)

	_, err = manager.Search(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = manager.Search(context.Background(), "ok", 0)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestAddAndSearch(t *testing.T) {
	embedder := axisEmbedder(map[string][]float32{
		"kubernetes": {1, 0, 0},
		"gardening":  {0, 1, 0},
	}, []float32{0, 0, 1})

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	indexed, err := manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "cluster upgrade", "the kubernetes cluster needs an upgrade"),
		testRecord("m2", "tomatoes", "gardening tips for early summer"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, indexed)

	results, err := manager.Search(context.Background(), "kubernetes", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "m1", results[0].Meta.MailId)
	assert.Equal(t, "cluster upgrade", results[0].Meta.Subject)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
}

func TestSearchRankingAndK(t *testing.T) {
	embedder := axisEmbedder(map[string][]float32{
		"alpha": {1, 0, 0},
		"beta":  {0.8, 0.6, 0},
	}, []float32{0, 0, 1})

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	_, err = manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "a", "alpha content"),
		testRecord("m2", "b", "beta content"),
		testRecord("m3", "c", "unrelated content"),
	})
	require.NoError(t, err)

	results, err := manager.Search(context.Background(), "alpha", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "m1", results[0].Meta.MailId)
	assert.Equal(t, "m2", results[1].Meta.MailId)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchTieBreakIsDeterministic(t *testing.T) {
	// Every text maps to the same vector, so all scores are equal and
	// ordering must fall back to mail id then sequence
	same := []float32{1, 0, 0}
	embedder := axisEmbedder(nil, same)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return same, nil
	}

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	_, err = manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m-b", "second", "body"),
		testRecord("m-a", "first", "body"),
		testRecord("m-c", "third", "body"),
	})
	require.NoError(t, err)

	results, err := manager.Search(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "m-a", results[0].Meta.MailId)
	assert.Equal(t, "m-b", results[1].Meta.MailId)
	assert.Equal(t, "m-c", results[2].Meta.MailId)
}

func TestSearchIsOrderIndependent(t *testing.T) {
	embedder := axisEmbedder(map[string][]float32{
		"alpha": {1, 0, 0},
		"beta":  {0.8, 0.6, 0},
		"gamma": {0, 1, 0},
	}, []float32{0, 0, 1})

	records := []*core.MailRecord{
		testRecord("m1", "a", "alpha content"),
		testRecord("m2", "b", "beta content"),
		testRecord("m3", "c", "gamma content"),
	}

	// Baseline: one rebuild over the full set
	baseline, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)
	_, err = baseline.Rebuild(context.Background(), records)
	require.NoError(t, err)

	want, err := baseline.Search(context.Background(), "alpha", 3)
	require.NoError(t, err)
	require.Len(t, want, 3)

	// Every insertion order of individual adds yields the same ranking
	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range permutations {
		manager, err := NewManager(embedder, t.TempDir())
		require.NoError(t, err)

		for _, i := range perm {
			_, err = manager.Add(context.Background(), []*core.MailRecord{records[i]})
			require.NoError(t, err)
		}

		got, err := manager.Search(context.Background(), "alpha", 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i := range want {
			assert.Equal(t, want[i].Meta.MailId, got[i].Meta.MailId, "perm %v rank %d", perm, i)
			assert.InDelta(t, want[i].Score, got[i].Score, 0.0001)
		}
	}
}

func TestAddSkipsMailOnEmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		for _, text := range texts {
			if strings.Contains(text, "poison") {
				return nil, assert.AnError
			}
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0, 0}
		}
		return vectors, nil
	}

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	bad := testRecord("m2", "bad", "poison body")
	indexed, err := manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "good", "fine body"),
		bad,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, indexed, "only the embeddable mail is indexed")

	stats := manager.Stats()
	assert.Equal(t, 1, stats.Mails)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	embedder := axisEmbedder(map[string][]float32{
		"invoice": {1, 0, 0},
	}, []float32{0, 0, 1})

	first, err := NewManager(embedder, dir)
	require.NoError(t, err)

	_, err = first.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "march invoice", "the invoice is due"),
	})
	require.NoError(t, err)

	// A second manager over the same directory sees the same index
	second, err := NewManager(embedder, dir)
	require.NoError(t, err)

	stats := second.Stats()
	assert.Equal(t, 1, stats.Mails)
	assert.True(t, stats.LastPersist.IsZero(), "reloaded index has not persisted this lifetime")

	results, err := second.Search(context.Background(), "invoice", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "m1", results[0].Meta.MailId)
	assert.Equal(t, "march invoice", results[0].Meta.Subject)
}

func TestCorruptSnapshotStartsFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.snap"), []byte("garbage"), 0o644))

	manager, err := NewManager(mock.NewMockEmbedder(), dir)
	require.NoError(t, err)

	stats := manager.Stats()
	assert.Equal(t, 0, stats.Entries)
	assert.False(t, stats.LastPersist.IsZero(), "fresh index replaces the corrupt snapshot")
}

func TestAddPersistFailureKeepsPreviousIndex(t *testing.T) {
	dir := t.TempDir()
	embedder := axisEmbedder(nil, []float32{1, 0, 0})

	manager, err := NewManager(embedder, dir)
	require.NoError(t, err)

	_, err = manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "kept", "first body"),
	})
	require.NoError(t, err)

	// Block the temp file path so the snapshot write fails
	tmpPath := filepath.Join(dir, "index.snap.tmp")
	require.NoError(t, os.MkdirAll(tmpPath, 0o755))

	_, err = manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m2", "rejected", "second body"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIndexPersistence)

	stats := manager.Stats()
	assert.Equal(t, 1, stats.Mails, "failed add must not change the in-memory index")

	// After the obstruction is gone, adds work again
	require.NoError(t, os.Remove(tmpPath))
	indexed, err := manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m2", "accepted", "second body"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, 2, manager.Stats().Mails)
}

func TestRebuildReplacesIndex(t *testing.T) {
	embedder := axisEmbedder(nil, []float32{1, 0, 0})

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	_, err = manager.Add(context.Background(), []*core.MailRecord{
		testRecord("m1", "old", "old body"),
	})
	require.NoError(t, err)

	indexed, err := manager.Rebuild(context.Background(), []*core.MailRecord{
		testRecord("m2", "new", "new body"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)

	stats := manager.Stats()
	assert.Equal(t, 1, stats.Mails)

	results, err := manager.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	for _, result := range results {
		assert.Equal(t, "m2", result.Meta.MailId, "old entries must be gone after rebuild")
	}
}

func TestSourceFor(t *testing.T) {
	embedder := axisEmbedder(nil, []float32{1, 0, 0})

	manager, err := NewManager(embedder, t.TempDir())
	require.NoError(t, err)

	record := testRecord("m1", "subject", "short body")
	_, err = manager.Add(context.Background(), []*core.MailRecord{record})
	require.NoError(t, err)

	chunks := splitRecord(record, DefaultChunkSize, DefaultChunkOverlap)
	require.NotEmpty(t, chunks)

	meta, ok := manager.SourceFor(chunks[0].Id)
	require.True(t, ok)
	assert.Equal(t, "m1", meta.MailId)
	assert.Equal(t, "subject", meta.Subject)

	_, ok = manager.SourceFor(core.IDFromContent("never indexed"))
	assert.False(t, ok)
}

func TestSplitRecordDeterministic(t *testing.T) {
	record := testRecord("m1", "subject", "some body content for chunking")

	a := splitRecord(record, 100, 20)
	b := splitRecord(record, 100, 20)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Id, b[i].Id)
		assert.Equal(t, a[i].Text, b[i].Text)
		assert.Equal(t, "m1", a[i].MailId)
		assert.Equal(t, i, a[i].Seq)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 0.0001)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 0.0001)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 0.0001)
	assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, float32(0), cosineSimilarity(nil, []float32{1, 1}))
}
