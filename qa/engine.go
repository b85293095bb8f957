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


package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mailmind/ai"
	"github.com/poiesic/mailmind/core"
)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5

	// DefaultContextBudget bounds the concatenated excerpt text handed
	// to the completion model, in characters.
	DefaultContextBudget = 6000
)

// Searcher retrieves ranked chunks for a query. Satisfied by
// *index.Manager.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]core.SearchResult, error)
}

// Engine composes retrieval-grounded answers over the mail index.
type Engine struct {
	searcher      Searcher
	answerer      ai.Answerer
	topK          int
	contextBudget int
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithTopK sets the number of chunks retrieved per question.
func WithTopK(k int) Option {
	return func(e *Engine) error {
		if k > 0 {
			e.topK = k
		}
		return nil
	}
}

// WithContextBudget sets the maximum concatenated context length.
func WithContextBudget(budget int) Option {
	return func(e *Engine) error {
		if budget > 0 {
			e.contextBudget = budget
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "qa")
		return nil
	}
}

// NewEngine creates a retrieval-QA engine over the given searcher and
// answering model.
func NewEngine(searcher Searcher, answerer ai.Answerer, opts ...Option) (*Engine, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	e := &Engine{
		searcher:      searcher,
		answerer:      answerer,
		topK:          DefaultTopK,
		contextBudget: DefaultContextBudget,
		logger:        slog.Default().With("component", "qa"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Ask answers a question from the indexed mail. Retrieval or model
// failures produce an answer describing the failure with an empty
// source list; only a blank question is an error.
func (e *Engine) Ask(ctx context.Context, question string) (*core.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	results, err := e.searcher.Search(ctx, question, e.topK)
	if err != nil {
		e.logger.Error("retrieval failed", "err", err)
		return &core.Answer{
			Text:    "I could not search the mail index: " + err.Error(),
			Sources: []core.SearchResult{},
		}, nil
	}

	if len(results) == 0 {
		return &core.Answer{
			Text:    "I could not find any relevant mail for that question.",
			Sources: []core.SearchResult{},
		}, nil
	}

	contextText, used := e.composeContext(results)

	answer, err := e.answerer.Answer(ctx, question, contextText)
	if err != nil {
		e.logger.Error("answer generation failed", "err", err)
		return &core.Answer{
			Text:    "I found relevant mail but could not generate an answer: " + err.Error(),
			Sources: []core.SearchResult{},
		}, nil
	}

	return &core.Answer{
		Text:    answer,
		Sources: used,
	}, nil
}

// composeContext concatenates retrieved excerpts, each prefixed with
// its mail's header line, stopping before the budget is exceeded. At
// least one excerpt is always included, hard-truncated if necessary.
// Returns the context text and the excerpts actually used.
func (e *Engine) composeContext(results []core.SearchResult) (string, []core.SearchResult) {
	var b strings.Builder
	used := make([]core.SearchResult, 0, len(results))

	for _, result := range results {
		excerpt := formatExcerpt(&result)

		if b.Len() > 0 && b.Len()+len(excerpt) > e.contextBudget {
			break
		}

		if b.Len() == 0 && len(excerpt) > e.contextBudget {
			excerpt = excerpt[:e.contextBudget]
		}

		if b.Len() > 0 {
			b.WriteString("\n---\n")
		}
		b.WriteString(excerpt)
		used = append(used, result)
	}

	return b.String(), used
}

func formatExcerpt(result *core.SearchResult) string {
	header := fmt.Sprintf("From %s, subject %q", result.Meta.Sender, result.Meta.Subject)
	if !result.Meta.Date.IsZero() {
		header += ", dated " + result.Meta.Date.UTC().Format("2006-01-02")
	}
	return header + ":\n" + result.Text
}
