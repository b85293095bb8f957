package enrich

import "errors"

var (
	// ErrSummarizerRequired indicates NewEnricher was called without a summarizer.
	ErrSummarizerRequired = errors.New("enrich: summarizer is required")

	// ErrClassifierRequired indicates NewEnricher was called without a classifier.
	ErrClassifierRequired = errors.New("enrich: classifier is required")
)
