package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mailmind "github.com/poiesic/mailmind"
	aimock "github.com/poiesic/mailmind/ai/mock"
	"github.com/poiesic/mailmind/config"
	"github.com/poiesic/mailmind/core"
	mailmock "github.com/poiesic/mailmind/mailbox/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*mailmind.System, *mailmock.MockTransport) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.Mailbox.Inbox = filepath.Join(dir, "inbox")
	cfg.Mailbox.Outbox = filepath.Join(dir, "outbox")
	cfg.Index.Dir = filepath.Join(dir, "index")
	cfg.Archive.Path = filepath.Join(dir, "archive")

	transport := mailmock.NewMockTransport()
	transport.SetConnected(true)

	sys, err := mailmind.NewSystem(cfg,
		mailmind.WithAIProvider(aimock.NewMockProvider()),
		mailmind.WithTransport(transport),
	)
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })

	return sys, transport
}

func archiveMail(t *testing.T, sys *mailmind.System, id, subject string, received time.Time) {
	t.Helper()
	record := &core.MailRecord{
		Id:         id,
		Subject:    subject,
		Sender:     "alice@example.com",
		Date:       received,
		Body:       "body of " + id,
		Importance: core.ImportanceMedium,
		Category:   core.CategoryWork,
	}
	require.NoError(t, sys.MailRepository().AddMailRecords(context.Background(), record))
}

func doRequest(t *testing.T, sys *mailmind.System, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewRouter(sys).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	sys, _ := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rec.Body.String())
}

func TestListMail(t *testing.T) {
	sys, _ := newTestSystem(t)
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	archiveMail(t, sys, "m1", "first", base)
	archiveMail(t, sys, "m2", "second", base.Add(time.Hour))

	rec := doRequest(t, sys, http.MethodGet, "/mail?limit=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Count int               `json:"count"`
			Mail  []json.RawMessage `json:"mail"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Count)
}

func TestGetMail(t *testing.T) {
	sys, _ := newTestSystem(t)
	archiveMail(t, sys, "m1", "hello", time.Now().UTC())

	rec := doRequest(t, sys, http.MethodGet, "/mail/m1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello")

	rec = doRequest(t, sys, http.MethodGet, "/mail/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestSearchRequiresQuery(t *testing.T) {
	sys, _ := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, sys, http.MethodGet, "/search?q=+", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchReturnsResults(t *testing.T) {
	sys, _ := newTestSystem(t)
	archiveMail(t, sys, "m1", "indexed subject", time.Now().UTC())

	_, err := sys.RebuildIndex(context.Background())
	require.NoError(t, err)

	rec := doRequest(t, sys, http.MethodGet, "/search?q=anything&k=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Count)
}

func TestAsk(t *testing.T) {
	sys, _ := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodPost, "/ask", `{"question":"what is new?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    core.Answer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Text)
}

func TestAskValidation(t *testing.T) {
	sys, _ := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodPost, "/ask", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, sys, http.MethodPost, "/ask", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	sys, _ := newTestSystem(t)
	archiveMail(t, sys, "m1", "s", time.Now().UTC())

	rec := doRequest(t, sys, http.MethodGet, "/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data mailmind.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.ArchivedMail)
}

func TestRebuildIndex(t *testing.T) {
	sys, _ := newTestSystem(t)
	archiveMail(t, sys, "m1", "s", time.Now().UTC())
	archiveMail(t, sys, "m2", "s", time.Now().UTC())

	rec := doRequest(t, sys, http.MethodPost, "/index/rebuild", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"indexed":2}}`, rec.Body.String())
}

func TestNotifyTest(t *testing.T) {
	sys, transport := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodPost, "/notify/test", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	messages := transport.Sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "[mailmind] test notification", messages[0].Subject)
}

func TestSend(t *testing.T) {
	sys, transport := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodPost, "/send",
		`{"to":["bob@example.com"],"subject":"hi","body":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	messages := transport.Sent()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"bob@example.com"}, messages[0].To)
	assert.Equal(t, "hi", messages[0].Subject)
}

func TestSendValidation(t *testing.T) {
	sys, _ := newTestSystem(t)

	rec := doRequest(t, sys, http.MethodPost, "/send", `{"subject":"no recipients"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
