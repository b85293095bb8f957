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

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
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

	return &Classifier{
		client:  client,
		timeout: config.RequestTimeout,
		logger:  slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify judges the importance and category of a mail. The returned
// values are raw model strings, lowercased and trimmed; the caller maps
// unknown values onto its defaults. A single model call is made per
// invocation.
func (c *Classifier) Classify(ctx context.Context, subject, sender, text string) (*ai.Classification, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifyPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifyInput(subject, sender, text)),
			},
		},
	}

	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("failed to generate classification", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model")
		return nil, fmt.Errorf("classify: empty model response")
	}

	var result ai.Classification
	mode, err := parseModelJSON(response.Choices[0].Content, &result)
	if mode == parseFailed {
		c.logger.Error("failed to parse classification response",
			"response", response.Choices[0].Content,
			"err", err)
		return nil, fmt.Errorf("classify: parsing model output: %w", err)
	}
	if mode != parseDirect {
		c.logger.Warn("classification response required recovery", "mode", string(mode))
	}

	result.Importance = strings.ToLower(strings.TrimSpace(result.Importance))
	result.Category = strings.ToLower(strings.TrimSpace(result.Category))
	return &result, nil
}
