package maildir

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/poiesic/mailmind/core"
)

// parseMessage converts a raw RFC822 message into a MailRecord.
// fallbackId is used when the message carries no Message-ID.
func parseMessage(raw io.Reader, fallbackId string) (*core.MailRecord, error) {
	msg, err := mail.ReadMessage(raw)
	if err != nil {
		return nil, err
	}

	record := &core.MailRecord{
		Id:      messageId(msg, fallbackId),
		Subject: decodeHeader(msg.Header.Get("Subject")),
		Sender:  decodeHeader(msg.Header.Get("From")),
	}

	if to, err := msg.Header.AddressList("To"); err == nil {
		for _, addr := range to {
			record.Recipients = append(record.Recipients, addr.Address)
		}
	}

	if date, err := msg.Header.Date(); err == nil {
		record.Date = date.UTC()
	} else {
		record.Date = time.Now().UTC()
	}

	contentType := msg.Header.Get("Content-Type")
	encoding := msg.Header.Get("Content-Transfer-Encoding")
	readBody(record, msg.Body, contentType, encoding, 0)

	return record, nil
}

func messageId(msg *mail.Message, fallbackId string) string {
	id := strings.Trim(msg.Header.Get("Message-ID"), " <>")
	if id == "" {
		return fallbackId
	}
	return id
}

func decodeHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// readBody fills the record's plain and HTML bodies plus attachment
// metadata from a message or part body. Multipart containers recurse
// one level per nesting; depth caps runaway nesting.
func readBody(record *core.MailRecord, body io.Reader, contentType, encoding string, depth int) {
	if depth > 4 {
		return
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return
		}
		reader := multipart.NewReader(body, boundary)
		for {
			part, err := reader.NextPart()
			if err != nil {
				return
			}
			readPart(record, part, depth+1)
		}
	}

	text, err := decodeContent(body, encoding)
	if err != nil {
		return
	}

	switch {
	case mediaType == "text/html":
		if record.HTMLBody == "" {
			record.HTMLBody = text
		}
	case strings.HasPrefix(mediaType, "text/"):
		if record.Body == "" {
			record.Body = text
		}
	}
}

func readPart(record *core.MailRecord, part *multipart.Part, depth int) {
	defer part.Close()

	disposition, dispParams, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if disposition == "attachment" {
		size, _ := io.Copy(io.Discard, part)
		mediaType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		record.Attachments = append(record.Attachments, core.Attachment{
			Filename:    dispParams["filename"],
			ContentType: mediaType,
			Size:        size,
		})
		return
	}

	readBody(record, part,
		part.Header.Get("Content-Type"),
		part.Header.Get("Content-Transfer-Encoding"),
		depth)
}

func decodeContent(body io.Reader, encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
