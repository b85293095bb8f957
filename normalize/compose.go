package normalize

import (
	"strings"

	"github.com/poiesic/mailmind/core"
)

// ComposeDocument builds the textual representation of a mail used for
// model calls and indexing: header fields followed by the normalized
// body. When withEnrichment is true and the record has been enriched,
// the summary and key information are included ahead of the body so
// chunking favors the distilled content.
func ComposeDocument(record *core.MailRecord, withEnrichment bool) string {
	var b strings.Builder

	b.WriteString("Subject: ")
	b.WriteString(record.Subject)
	b.WriteString("\nFrom: ")
	b.WriteString(record.Sender)
	if len(record.Recipients) > 0 {
		b.WriteString("\nTo: ")
		b.WriteString(strings.Join(record.Recipients, ", "))
	}
	if !record.Date.IsZero() {
		b.WriteString("\nDate: ")
		b.WriteString(record.Date.UTC().Format("2006-01-02 15:04:05"))
	}
	b.WriteString("\n")

	if withEnrichment && record.Summary != "" {
		b.WriteString("\nSummary: ")
		b.WriteString(record.Summary)
		b.WriteString("\n")
		writeList(&b, "Key points", record.KeyInfo.KeyPoints)
		writeList(&b, "Action items", record.KeyInfo.ActionItems)
		writeList(&b, "Important dates", record.KeyInfo.ImportantDates)
		writeList(&b, "Contacts", record.KeyInfo.Contacts)
	}

	b.WriteString("\n")
	b.WriteString(Normalize(record).Text)

	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strings.Join(items, "; "))
	b.WriteString("\n")
}
