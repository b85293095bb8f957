package qa

import "errors"

var (
	// ErrSearcherRequired indicates NewEngine was called without a searcher.
	ErrSearcherRequired = errors.New("qa: searcher is required")

	// ErrAnswererRequired indicates NewEngine was called without an answerer.
	ErrAnswererRequired = errors.New("qa: answerer is required")

	// ErrEmptyQuestion indicates Ask was called with a blank question.
	ErrEmptyQuestion = errors.New("qa: question is empty")
)
