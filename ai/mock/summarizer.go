package mock

import (
	"context"
	"strings"

	"github.com/poiesic/mailmind/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default word-based behavior.
	SummarizeFunc func(ctx context.Context, document string) (*ai.MailSummary, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSummarizer().
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize produces a simple summary from the document's first words.
func (m *MockSummarizer) Summarize(ctx context.Context, document string) (*ai.MailSummary, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, document)
	}

	words := strings.Fields(document)
	if len(words) > 12 {
		words = words[:12]
	}

	return &ai.MailSummary{
		Summary:        strings.Join(words, " "),
		KeyPoints:      []string{},
		ActionItems:    []string{},
		ImportantDates: []string{},
		Contacts:       []string{},
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
