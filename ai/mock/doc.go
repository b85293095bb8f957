// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Summarizer,
// ai.Classifier, ai.Answerer, and ai.AIProvider for use in unit tests. The
// mocks allow tests to run without external AI service dependencies and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.ClassifyFunc = func(ctx context.Context, subject, sender, text string) (*ai.Classification, error) {
//	    return &ai.Classification{Importance: "high", Category: "work"}, nil
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockSummarizer: Builds a summary from the first words of the document
//   - MockClassifier: Returns "medium" importance, "other" category
//   - MockAnswerer: Echoes the question with a canned answer prefix
//   - MockProvider: Aggregates all four mock services
package mock
