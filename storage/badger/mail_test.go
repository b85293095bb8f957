package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) storage.MailRepository {
	t.Helper()

	repo, backend, err := NewMemoryMailRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func archivedMail(id string, received time.Time) *core.MailRecord {
	return &core.MailRecord{
		Id:         id,
		Subject:    "subject of " + id,
		Sender:     "alice@example.com",
		Recipients: []string{"bob@example.com"},
		Date:       received,
		Body:       "body of " + id,
		Importance: core.ImportanceMedium,
		Category:   core.CategoryWork,
	}
}

func TestAddAndGetMailRecord(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	record := archivedMail("m1@example.com", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	record.Summary = "a summary"
	record.KeyInfo = core.KeyInfo{KeyPoints: []string{"point"}}
	record.Attachments = []core.Attachment{{Filename: "a.pdf", ContentType: "application/pdf", Size: 1024}}

	require.NoError(t, repo.AddMailRecords(ctx, record))

	got, err := repo.GetMailRecord(ctx, "m1@example.com")
	require.NoError(t, err)
	assert.Equal(t, record.Subject, got.Subject)
	assert.Equal(t, record.Sender, got.Sender)
	assert.Equal(t, record.Summary, got.Summary)
	assert.Equal(t, record.KeyInfo.KeyPoints, got.KeyInfo.KeyPoints)
	assert.Equal(t, record.Importance, got.Importance)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "a.pdf", got.Attachments[0].Filename)
	assert.True(t, record.Date.Equal(got.Date))
}

func TestGetMailRecordNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetMailRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddMailRecordsValidates(t *testing.T) {
	repo := setupRepo(t)

	err := repo.AddMailRecords(context.Background(), &core.MailRecord{Sender: "a@example.com"})
	assert.ErrorIs(t, err, core.ErrEmptyMailId)
}

func TestGetMailRecordsSkipsMissing(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddMailRecords(ctx,
		archivedMail("m1", time.Now()),
		archivedMail("m2", time.Now()),
	))

	records, err := repo.GetMailRecords(ctx, "m1", "missing", "m2")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetRecentMailRecords(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := archivedMail(fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.AddMailRecords(ctx, record))
	}

	records, err := repo.GetRecentMailRecords(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "m4", records[0].Id, "most recent first")
	assert.Equal(t, "m3", records[1].Id)
	assert.Equal(t, "m2", records[2].Id)
}

func TestGetRecentMailRecordsInvalidLimit(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetRecentMailRecords(context.Background(), 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestGetMailRecordsByDateRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		record := archivedMail(fmt.Sprintf("m%d", i), base.AddDate(0, 0, i))
		require.NoError(t, repo.AddMailRecords(ctx, record))
	}

	records, err := repo.GetMailRecordsByDateRange(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "m1", records[0].Id)
	assert.Equal(t, "m2", records[1].Id)

	_, err = repo.GetMailRecordsByDateRange(ctx, base, base.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestOverwriteRefreshesDateIndex(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	oldDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	record := archivedMail("m1", oldDate)
	require.NoError(t, repo.AddMailRecords(ctx, record))

	updated := archivedMail("m1", newDate)
	updated.Summary = "now enriched"
	require.NoError(t, repo.AddMailRecords(ctx, updated))

	count, err := repo.CountMailRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Stale index entry must be gone
	stale, err := repo.GetMailRecordsByDateRange(ctx, oldDate, oldDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := repo.GetMailRecordsByDateRange(ctx, newDate, newDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "now enriched", fresh[0].Summary)
}

func TestAllMailRecordsAndCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	count, err := repo.CountMailRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddMailRecords(ctx, archivedMail(fmt.Sprintf("m%d", i), time.Now())))
	}

	all, err := repo.AllMailRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err = repo.CountMailRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
