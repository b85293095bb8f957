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


package config

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	AI       AIConfig          `yaml:"ai"`
	Mailbox  MailboxConfig     `yaml:"mailbox"`
	Index    IndexConfig       `yaml:"index"`
	Archive  ArchiveConfig     `yaml:"archive"`
	Pipeline PipelineConfig    `yaml:"pipeline"`
	Notify   NotifyConfig      `yaml:"notify"`
	QA       QAConfig          `yaml:"qa"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if err := c.Mailbox.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	if err := c.Notify.Validate(); err != nil {
		return err
	}
	return c.QA.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP gateway configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP gateway listen address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AIConfig holds model service configuration.
type AIConfig struct {
	EmbeddingHost         string `yaml:"embedding_host"`
	CompletionHost        string `yaml:"completion_host"`
	EmbeddingModel        string `yaml:"embedding_model"`
	CompletionModel       string `yaml:"completion_model"`
	APIKey                string `yaml:"api_key"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// RequestTimeout returns the per-call deadline as a duration.
func (c *AIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.EmbeddingHost, validation.Required),
		validation.Field(&c.CompletionHost, validation.Required),
		validation.Field(&c.EmbeddingModel, validation.Required),
		validation.Field(&c.CompletionModel, validation.Required),
		validation.Field(&c.RequestTimeoutSeconds, validation.Min(0)),
	)
}

// MailboxConfig holds the maildir transport configuration. Inbox is the
// Maildir the pipeline fetches from; Outbox receives outgoing messages.
type MailboxConfig struct {
	Inbox  string `yaml:"inbox"`
	Outbox string `yaml:"outbox"`
}

// Validate validates the mailbox configuration. A missing inbox is a
// startup-fatal condition.
func (c *MailboxConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Inbox, validation.Required),
		validation.Field(&c.Outbox, validation.Required),
	)
}

// IndexConfig holds vector index configuration.
type IndexConfig struct {
	Dir          string `yaml:"dir"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.ChunkSize, validation.Min(0)),
		validation.Field(&c.ChunkOverlap, validation.Min(0)),
	); err != nil {
		return err
	}
	if c.ChunkSize > 0 && c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("index: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// ArchiveConfig holds the mail archive database configuration.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the archive configuration.
func (c *ArchiveConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// PipelineConfig holds orchestrator timing configuration.
type PipelineConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	BackoffSeconds  int `yaml:"backoff_seconds"`
	PoolSize        int `yaml:"pool_size"`
}

// Interval returns the pause between successful cycles.
func (c *PipelineConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Backoff returns the pause after a failed cycle.
func (c *PipelineConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds) * time.Second
}

// Validate validates the pipeline configuration.
func (c *PipelineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.IntervalSeconds, validation.Min(0)),
		validation.Field(&c.BackoffSeconds, validation.Min(0)),
		validation.Field(&c.PoolSize, validation.Min(0)),
	)
}

// NotifyConfig holds notification delivery configuration.
type NotifyConfig struct {
	Recipients []string `yaml:"recipients"`
}

// Validate validates the notify configuration.
func (c *NotifyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Recipients, validation.Required, validation.Length(1, 0)),
	)
}

// QAConfig holds retrieval-QA configuration.
type QAConfig struct {
	TopK          int `yaml:"top_k"`
	ContextBudget int `yaml:"context_budget"`
}

// Validate validates the QA configuration.
func (c *QAConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TopK, validation.Min(0)),
		validation.Field(&c.ContextBudget, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8085,
			},
		},
		AI: AIConfig{
			EmbeddingHost:         "http://localhost:11434",
			CompletionHost:        "http://localhost:11434",
			EmbeddingModel:        "embeddinggemma",
			CompletionModel:       "qwen2.5:3b",
			APIKey:                "none",
			RequestTimeoutSeconds: 30,
		},
		Mailbox: MailboxConfig{
			Inbox:  "./maildir",
			Outbox: "./maildir-out",
		},
		Index: IndexConfig{
			Dir:          "./index",
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Archive: ArchiveConfig{
			Path: "./mailmind.db",
		},
		Pipeline: PipelineConfig{
			IntervalSeconds: 300,
			BackoffSeconds:  60,
		},
		Notify: NotifyConfig{
			Recipients: []string{"postmaster@localhost"},
		},
		QA: QAConfig{
			TopK:          5,
			ContextBudget: 6000,
		},
	}
}
