// Package ai defines the model-facing interfaces used by the mail
// pipeline: text embedding, summarization with key-information
// extraction, importance/category classification, and retrieval-grounded
// answering. Concrete implementations live in subpackages (openai for
// OpenAI-compatible services, mock for tests).
package ai
