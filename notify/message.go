package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/normalize"
)

const (
	// summaryLimit bounds the summary text in a focused notification.
	summaryLimit = 200

	// previewLimit bounds the body preview in a focused notification.
	previewLimit = 300

	// snippetLimit bounds each mail's summary snippet in a digest.
	snippetLimit = 100
)

// buildFocused formats the notification for a single high-importance mail.
func buildFocused(record *core.MailRecord) (subject, body string) {
	subject = "Important mail: " + record.Subject

	var b strings.Builder
	fmt.Fprintf(&b, "From:       %s\n", record.Sender)
	fmt.Fprintf(&b, "Subject:    %s\n", record.Subject)
	fmt.Fprintf(&b, "Received:   %s\n", formatTime(record.Date))
	fmt.Fprintf(&b, "Importance: %s\n", record.Importance)

	if record.Summary != "" {
		b.WriteString("\nSummary:\n")
		b.WriteString(truncate(record.Summary, summaryLimit))
		b.WriteString("\n")
	}

	preview := normalize.Normalize(record).Text
	if preview != "" {
		b.WriteString("\nPreview:\n")
		b.WriteString(truncate(preview, previewLimit))
		b.WriteString("\n")
	}

	return subject, b.String()
}

// buildDigest formats the single aggregated notification for several
// high-importance mails.
func buildDigest(records []*core.MailRecord) (subject, body string) {
	subject = fmt.Sprintf("%d important mails received", len(records))

	var b strings.Builder
	fmt.Fprintf(&b, "You received %d high-importance mails:\n", len(records))

	for i, record := range records {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, record.Subject)
		fmt.Fprintf(&b, "   From: %s at %s (%s)\n",
			record.Sender, formatTime(record.Date), record.Importance)
		if record.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(record.Summary, snippetLimit))
		}
	}

	return subject, b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// truncate cuts s at a rune boundary at or below limit bytes, marking
// the cut with an ellipsis.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + "..."
}
