package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/mailbox"
	"github.com/poiesic/mailmind/mailbox/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highMail(id, subject, summary string) *core.MailRecord {
	return &core.MailRecord{
		Id:         id,
		Subject:    subject,
		Sender:     "boss@example.com",
		Date:       time.Date(2025, 4, 2, 14, 30, 0, 0, time.UTC),
		Body:       "please handle this today",
		Summary:    summary,
		Importance: core.ImportanceHigh,
		Category:   core.CategoryWork,
	}
}

func mediumMail(id string) *core.MailRecord {
	return &core.MailRecord{
		Id:         id,
		Subject:    "newsletter",
		Sender:     "news@example.com",
		Body:       "weekly roundup",
		Importance: core.ImportanceMedium,
		Category:   core.CategoryNotification,
	}
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *mock.MockTransport) {
	t.Helper()

	transport := mock.NewMockTransport()
	transport.SetConnected(true)

	dispatcher, err := NewDispatcher(transport, []string{"me@example.com"})
	require.NoError(t, err)

	return dispatcher, transport
}

func TestNewDispatcherValidation(t *testing.T) {
	_, err := NewDispatcher(nil, []string{"me@example.com"})
	assert.ErrorIs(t, err, ErrTransportRequired)

	_, err = NewDispatcher(mock.NewMockTransport(), nil)
	assert.ErrorIs(t, err, ErrRecipientsRequired)
}

func TestDispatchNoHighImportance(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	sent := dispatcher.Dispatch(context.Background(), []*core.MailRecord{
		mediumMail("m1"), mediumMail("m2"),
	})

	assert.False(t, sent)
	assert.Empty(t, transport.Sent())
}

func TestDispatchEmptyBatch(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	assert.False(t, dispatcher.Dispatch(context.Background(), nil))
	assert.Empty(t, transport.Sent())
}

func TestDispatchSingleHighSendsFocused(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	sent := dispatcher.Dispatch(context.Background(), []*core.MailRecord{
		mediumMail("m1"),
		highMail("m2", "contract deadline", "sign by Friday"),
	})

	assert.True(t, sent)
	messages := transport.Sent()
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, []string{"me@example.com"}, msg.To)
	assert.Equal(t, "Important mail: contract deadline", msg.Subject)
	assert.Contains(t, msg.Body, "From:       boss@example.com")
	assert.Contains(t, msg.Body, "Received:   2025-04-02 14:30")
	assert.Contains(t, msg.Body, "sign by Friday")
	assert.Contains(t, msg.Body, "please handle this today")
}

func TestDispatchSeveralHighSendsSingleDigest(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	sent := dispatcher.Dispatch(context.Background(), []*core.MailRecord{
		highMail("m1", "first urgent", "summary one"),
		mediumMail("m2"),
		highMail("m3", "second urgent", "summary two"),
		highMail("m4", "third urgent", ""),
	})

	assert.True(t, sent)
	messages := transport.Sent()
	require.Len(t, messages, 1, "several high-importance mails produce exactly one digest")

	msg := messages[0]
	assert.Equal(t, "3 important mails received", msg.Subject)
	assert.Contains(t, msg.Body, "1. first urgent")
	assert.Contains(t, msg.Body, "2. second urgent")
	assert.Contains(t, msg.Body, "3. third urgent")
	assert.Contains(t, msg.Body, "summary one")
	assert.NotContains(t, msg.Body, "newsletter")
}

func TestSendRetriesOnceThenSucceeds(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	attempts := 0
	transport.SendFunc = func(ctx context.Context, msg *mailbox.OutgoingMail) error {
		attempts++
		if attempts == 1 {
			return errors.New("temporary failure")
		}
		return nil
	}

	sent := dispatcher.Dispatch(context.Background(), []*core.MailRecord{
		highMail("m1", "urgent", ""),
	})

	assert.True(t, sent)
	assert.Equal(t, 2, attempts)
}

func TestSendFailureAfterRetryIsSwallowed(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	attempts := 0
	transport.SendFunc = func(ctx context.Context, msg *mailbox.OutgoingMail) error {
		attempts++
		return errors.New("smtp down")
	}

	sent := dispatcher.Dispatch(context.Background(), []*core.MailRecord{
		highMail("m1", "urgent", ""),
	})

	assert.False(t, sent, "delivery failure is reported, never panics or propagates")
	assert.Equal(t, 2, attempts, "exactly one retry")
}

func TestSendSystem(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	assert.True(t, dispatcher.SendSystem(context.Background(), "startup", "pipeline started"))

	messages := transport.Sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "[mailmind] startup", messages[0].Subject)
	assert.Equal(t, "pipeline started", messages[0].Body)
}

func TestSendError(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	assert.True(t, dispatcher.SendError(context.Background(), "fetch", errors.New("connection reset")))

	messages := transport.Sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "[mailmind] pipeline error", messages[0].Subject)
	assert.Contains(t, messages[0].Body, "fetch")
	assert.Contains(t, messages[0].Body, "connection reset")
}

func TestSendTest(t *testing.T) {
	dispatcher, transport := newTestDispatcher(t)

	assert.True(t, dispatcher.SendTest(context.Background()))

	messages := transport.Sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "[mailmind] test notification", messages[0].Subject)
}

func TestBuildFocusedWithoutSummary(t *testing.T) {
	record := highMail("m1", "urgent", "")

	_, body := buildFocused(record)

	assert.NotContains(t, body, "Summary:")
	assert.Contains(t, body, "Preview:")
}

func TestTruncateMarksCut(t *testing.T) {
	long := strings.Repeat("a", 250)

	got := truncate(long, 200)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 203)
	assert.Equal(t, long, truncate(long, 250))
}
