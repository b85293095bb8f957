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


package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/mailmind/core"
)

// Result is the output of normalizing one mail record.
type Result struct {
	// Text is the cleaned plain text of the mail body.
	Text string

	// FromHTML reports whether Text was extracted from the HTML body
	// because no plain part existed.
	FromHTML bool
}

var (
	// Signature delimiters and closings. Matching is per-line; the
	// signature block runs from the matched line to the end of the text.
	signatureLineRe = regexp.MustCompile(`(?i)^\s*(--\s*|__+\s*|best regards\b.*|kind regards\b.*|warm regards\b.*|regards,\s*|sincerely\b.*|cheers,\s*|thanks,\s*|thank you,\s*|sent from my \w.*|get outlook for \w.*|此致.*|敬礼.*)$`)

	// Forwarded/original-message markers. The block runs from the
	// matched line to the next blank line, never further.
	forwardHeaderRe = regexp.MustCompile(`(?i)^\s*(-{2,}\s*original message\s*-{2,}|-{2,}\s*forwarded message\s*-{2,}|begin forwarded message:|on .{1,120} wrote:)\s*$`)

	blankCollapseRe = regexp.MustCompile(`\n{3,}`)
	spaceCollapseRe = regexp.MustCompile(`[ \t]+`)
)

// Normalize produces clean plain text for a mail record. The plain body
// is preferred; when absent, visible text is extracted from the HTML
// body. Never returns an error: any anomaly falls back to the raw body.
func Normalize(record *core.MailRecord) Result {
	text := record.Body
	fromHTML := false

	if strings.TrimSpace(text) == "" && strings.TrimSpace(record.HTMLBody) != "" {
		if extracted, ok := htmlToText(record.HTMLBody); ok {
			text = extracted
			fromHTML = true
		} else {
			text = record.HTMLBody
		}
	}

	text = stripForwardedHeaders(text)
	text = stripSignature(text)
	text = collapseWhitespace(text)

	return Result{Text: text, FromHTML: fromHTML}
}

// Clean strips signature and forwarded-header noise from plain text
// without HTML handling. Used where the body is already plain.
func Clean(text string) string {
	text = stripForwardedHeaders(text)
	text = stripSignature(text)
	return collapseWhitespace(text)
}

// htmlToText extracts visible text from an HTML document, dropping
// script and style content. Block-level elements become line breaks so
// paragraphs stay separated.
func htmlToText(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	doc.Find("script, style, head").Remove()

	// Force line breaks at block boundaries before flattening
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote").Each(func(i int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Text()
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// stripSignature removes a trailing signature block. The earliest line
// matching a signature marker in the second half of the text starts the
// block; everything from there to the end is dropped. Limiting the scan
// to the tail keeps a "Thanks," mid-message from truncating the body.
func stripSignature(text string) string {
	lines := strings.Split(text, "\n")
	scanFrom := len(lines) / 2
	for i := scanFrom; i < len(lines); i++ {
		if signatureLineRe.MatchString(lines[i]) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// stripForwardedHeaders removes forwarded/original-message header
// blocks: from each marker line to the next blank line, not beyond.
// The quoted content after the header block is kept.
func stripForwardedHeaders(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		if forwardHeaderRe.MatchString(lines[i]) {
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}
		kept = append(kept, lines[i])
		i++
	}

	return strings.Join(kept, "\n")
}

// collapseWhitespace squeezes runs of spaces and tabs and caps
// consecutive blank lines at one.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(spaceCollapseRe.ReplaceAllString(line, " "), " ")
	}
	text = strings.Join(lines, "\n")
	text = blankCollapseRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
