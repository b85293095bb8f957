package maildir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageSimple(t *testing.T) {
	record, err := parseMessage(strings.NewReader(simpleMessage), "fallback")
	require.NoError(t, err)

	assert.Equal(t, "msg-1@example.com", record.Id)
	assert.Equal(t, "hello", record.Subject)
	assert.Equal(t, "alice@example.com", record.Sender)
	assert.Equal(t, "2025-06-02", record.Date.Format("2006-01-02"))
	assert.Contains(t, record.Body, "plain body here")
	assert.Empty(t, record.HTMLBody)
}

func TestParseMessageFallbackId(t *testing.T) {
	raw := "From: a@example.com\nSubject: no id\n\nbody\n"

	record, err := parseMessage(strings.NewReader(raw), "1718000000.host")
	require.NoError(t, err)
	assert.Equal(t, "1718000000.host", record.Id)
}

func TestParseMessageMissingDateUsesNow(t *testing.T) {
	raw := "From: a@example.com\nSubject: undated\n\nbody\n"

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)
	assert.False(t, record.Date.IsZero())
}

func TestParseMessageEncodedSubject(t *testing.T) {
	raw := "From: a@example.com\n" +
		"Subject: =?UTF-8?B?5L2g5aW9?=\n" +
		"\nbody\n"

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)
	assert.Equal(t, "你好", record.Subject)
}

func TestParseMessageMultipartAlternative(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Subject: multipart",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="BOUND"`,
		"",
		"--BOUND",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"the plain part",
		"--BOUND",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>the html part</p>",
		"--BOUND--",
		"",
	}, "\r\n")

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)

	assert.Contains(t, record.Body, "the plain part")
	assert.Contains(t, record.HTMLBody, "the html part")
	assert.Empty(t, record.Attachments)
}

func TestParseMessageAttachmentMetadataOnly(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Subject: with attachment",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUND"`,
		"",
		"--BOUND",
		"Content-Type: text/plain",
		"",
		"see attached",
		"--BOUND",
		"Content-Type: application/pdf",
		`Content-Disposition: attachment; filename="report.pdf"`,
		"",
		"%PDF-1.4 fake content",
		"--BOUND--",
		"",
	}, "\r\n")

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)

	assert.Contains(t, record.Body, "see attached")
	require.Len(t, record.Attachments, 1)

	att := record.Attachments[0]
	assert.Equal(t, "report.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Greater(t, att.Size, int64(0))
	assert.NotContains(t, record.Body, "%PDF", "attachment content is never stored")
}

func TestParseMessageQuotedPrintable(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Subject: qp",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Transfer-Encoding: quoted-printable",
		"",
		"caf=C3=A9 meeting",
		"",
	}, "\r\n")

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)
	assert.Contains(t, record.Body, "café meeting")
}

func TestParseMessageBase64(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		"Subject: b64",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Transfer-Encoding: base64",
		"",
		"aGVsbG8gZnJvbSBiYXNlNjQ=",
		"",
	}, "\r\n")

	record, err := parseMessage(strings.NewReader(raw), "f")
	require.NoError(t, err)
	assert.Contains(t, record.Body, "hello from base64")
}

func TestParseMessageGarbage(t *testing.T) {
	_, err := parseMessage(strings.NewReader("no headers at all"), "f")
	assert.Error(t, err)
}
