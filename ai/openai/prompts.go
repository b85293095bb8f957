package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/mailmind/ai"
)

const summaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "key_points": {"type": "array", "items": {"type": "string"}},
    "action_items": {"type": "array", "items": {"type": "string"}},
    "important_dates": {"type": "array", "items": {"type": "string"}},
    "contacts": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["summary", "key_points", "action_items", "important_dates", "contacts"],
  "additionalProperties": false
}`

const summaryPromptTemplate = `You analyze email messages. Summarize the given email and extract its key
information, returning the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "summary" is 2-3 sentences covering what the email is about and what, if anything, it asks of the recipient.
- "key_points" lists the main facts or statements, one short phrase each.
- "action_items" lists concrete actions expected of the recipient. Empty array if none.
- "important_dates" lists dates and deadlines exactly as they appear in the email. Empty array if none.
- "contacts" lists names or addresses of people relevant to the email. Empty array if none.
- Use only information present in the email. Do not invent details.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const classifyResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "importance": {"type": "string"},
    "category": {"type": "string"}
  },
  "required": ["importance", "category"],
  "additionalProperties": false
}`

const classifyPromptTemplate = `You triage email. Judge the importance and category of the given email and
return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "importance" must be exactly one of: %s.
  high: urgent matters, deadlines within days, direct requests requiring a response, security alerts.
  medium: relevant work or personal correspondence with no immediate deadline.
  low: newsletters, promotions, automated notices, bulk mail.
- "category" must be exactly one of: %s.
- Judge from the subject, sender, and content. When uncertain, prefer "medium" and "other".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const answerPromptTemplate = `You answer questions about a user's email using only the excerpts provided.

Rules:
- Base the answer strictly on the excerpts. Do not use outside knowledge and do not speculate.
- If the excerpts do not contain the answer, say so plainly.
- Mention senders, dates, or subjects from the excerpts when they support the answer.
- Answer in plain prose. Keep it concise.`

// buildSummaryPrompt creates the system prompt for summarization.
func buildSummaryPrompt() string {
	return fmt.Sprintf(summaryPromptTemplate, summaryResponseSchema)
}

// buildClassifyPrompt creates the system prompt with the valid labels embedded.
func buildClassifyPrompt() string {
	return fmt.Sprintf(classifyPromptTemplate,
		classifyResponseSchema,
		strings.Join(ai.ImportanceLevels, ", "),
		strings.Join(ai.MailCategories, ", "))
}

// buildClassifyInput formats the mail fields into the human message for
// a classification call.
func buildClassifyInput(subject, sender, content string) string {
	var b strings.Builder
	b.WriteString("Subject: ")
	b.WriteString(subject)
	b.WriteString("\nFrom: ")
	b.WriteString(sender)
	b.WriteString("\n\n")
	b.WriteString(content)
	return b.String()
}

// buildAnswerInput formats the question and retrieved excerpts into the
// human message for an answering call.
func buildAnswerInput(question, contextText string) string {
	var b strings.Builder
	b.WriteString("Email excerpts:\n\n")
	b.WriteString(contextText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
