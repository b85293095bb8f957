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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/mailmind/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client:  client,
		timeout: config.RequestTimeout,
		logger:  slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize produces a summary with extracted key information for the document.
// A single model call is made; a failure is returned to the caller rather
// than retried, so per-mail fallback behavior stays with the enrichment layer.
func (s *Summarizer) Summarize(ctx context.Context, document string) (*ai.MailSummary, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSummaryPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(document),
			},
		},
	}

	ctx, cancel := callContext(ctx, s.timeout)
	defer cancel()

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
	if err != nil {
		s.logger.Error("failed to generate summary", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		s.logger.Warn("no choices returned from model")
		return nil, fmt.Errorf("summarize: empty model response")
	}

	var result ai.MailSummary
	mode, err := parseModelJSON(response.Choices[0].Content, &result)
	if mode == parseFailed {
		s.logger.Error("failed to parse summary response",
			"response", response.Choices[0].Content,
			"err", err)
		return nil, fmt.Errorf("summarize: parsing model output: %w", err)
	}
	if mode != parseDirect {
		s.logger.Warn("summary response required recovery", "mode", string(mode))
	}

	result.Summary = strings.TrimSpace(result.Summary)
	return &result, nil
}
