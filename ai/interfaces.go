package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces a summary and key information from a composed mail
// document. Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize analyzes the document and returns a summary with extracted
	// key points, action items, important dates, and contacts.
	// Returns an error if the model call fails or its output cannot be
	// parsed as structured data after fallback recovery.
	Summarize(ctx context.Context, document string) (*MailSummary, error)
}

// Classifier assigns an importance level and category to a mail.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify judges the mail's importance and category from its subject,
	// sender, and (possibly truncated) content.
	// Returns an error if the model call fails or its output cannot be
	// parsed as structured data after fallback recovery.
	Classify(ctx context.Context, subject, sender, content string) (*Classification, error)
}

// Answerer composes an answer to a question grounded in the supplied
// context text. Implementations must be thread-safe for concurrent use.
type Answerer interface {
	// Answer generates a response to the question using only the given
	// context. When the context lacks the answer, the response states
	// that explicitly instead of speculating.
	Answer(ctx context.Context, question, contextText string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages its service
// instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// Classifier returns the importance/category classification service.
	Classifier() Classifier

	// Answerer returns the grounded question-answering service.
	Answerer() Answerer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
