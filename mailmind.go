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


// Package mailmind assembles the mail intelligence system: a periodic
// pipeline that fetches mail, enriches it with model-generated
// summaries and importance labels, maintains a persisted vector index,
// answers questions against that index, and notifies about
// high-importance mail.
package mailmind

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/mailmind/ai"
	"github.com/poiesic/mailmind/ai/openai"
	"github.com/poiesic/mailmind/config"
	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/enrich"
	"github.com/poiesic/mailmind/index"
	"github.com/poiesic/mailmind/mailbox"
	"github.com/poiesic/mailmind/mailbox/maildir"
	"github.com/poiesic/mailmind/notify"
	"github.com/poiesic/mailmind/pipeline"
	"github.com/poiesic/mailmind/qa"
	"github.com/poiesic/mailmind/storage"
	"github.com/poiesic/mailmind/storage/badger"
)

// System wires the pipeline components over shared configuration.
type System struct {
	backend    *badger.Backend
	mailRepo   storage.MailRepository
	provider   ai.AIProvider
	transport  mailbox.Transport
	enricher   *enrich.Enricher
	indexer    *index.Manager
	dispatcher *notify.Dispatcher
	qaEngine   *qa.Engine
	pipe       *pipeline.Pipeline
	logger     *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	provider  ai.AIProvider
	transport mailbox.Transport
}

// WithAIProvider overrides the OpenAI-backed provider, mainly for tests.
func WithAIProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithTransport overrides the maildir transport, for other wire
// protocols or tests.
func WithTransport(transport mailbox.Transport) SystemOption {
	return func(o *systemOptions) {
		o.transport = transport
	}
}

// NewSystem builds the full system from configuration. Configuration
// errors here are startup-fatal by design; once Start succeeds, runtime
// errors are contained inside the pipeline loop.
func NewSystem(cfg *config.Config, opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		aiCfg := ai.NewConfig(
			ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
			ai.WithCompletionHost(cfg.AI.CompletionHost),
			ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
			ai.WithCompletionModel(cfg.AI.CompletionModel),
			ai.WithAPIKey(cfg.AI.APIKey),
			ai.WithRequestTimeout(cfg.AI.RequestTimeout()),
		)
		var err error
		provider, err = openai.NewProvider(aiCfg)
		if err != nil {
			return nil, err
		}
	}

	transport := options.transport
	if transport == nil {
		var err error
		transport, err = maildir.NewTransport(cfg.Mailbox.Inbox, cfg.Mailbox.Outbox)
		if err != nil {
			provider.Close()
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(cfg.Archive.Path, false)
	if err != nil {
		provider.Close()
		return nil, err
	}

	mailRepo, err := badger.NewMailRepository(backend)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	indexer, err := index.NewManager(provider.Embedder(), cfg.Index.Dir,
		index.WithChunking(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap))
	if err != nil {
		mailRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	var enrichOpts []enrich.Option
	if cfg.Pipeline.PoolSize > 0 {
		enrichOpts = append(enrichOpts, enrich.WithPoolSize(cfg.Pipeline.PoolSize))
	}
	enricher, err := enrich.NewEnricher(provider.Summarizer(), provider.Classifier(), enrichOpts...)
	if err != nil {
		mailRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	dispatcher, err := notify.NewDispatcher(transport, cfg.Notify.Recipients)
	if err != nil {
		enricher.Release()
		mailRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	var qaOpts []qa.Option
	if cfg.QA.TopK > 0 {
		qaOpts = append(qaOpts, qa.WithTopK(cfg.QA.TopK))
	}
	if cfg.QA.ContextBudget > 0 {
		qaOpts = append(qaOpts, qa.WithContextBudget(cfg.QA.ContextBudget))
	}
	qaEngine, err := qa.NewEngine(indexer, provider.Answerer(), qaOpts...)
	if err != nil {
		enricher.Release()
		mailRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	var pipeOpts []pipeline.Option
	pipeOpts = append(pipeOpts, pipeline.WithArchive(mailRepo))
	if cfg.Pipeline.IntervalSeconds > 0 {
		pipeOpts = append(pipeOpts, pipeline.WithInterval(cfg.Pipeline.Interval()))
	}
	if cfg.Pipeline.BackoffSeconds > 0 {
		pipeOpts = append(pipeOpts, pipeline.WithBackoff(cfg.Pipeline.Backoff()))
	}
	pipe, err := pipeline.New(transport, enricher, indexer, dispatcher, pipeOpts...)
	if err != nil {
		enricher.Release()
		mailRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &System{
		backend:    backend,
		mailRepo:   mailRepo,
		provider:   provider,
		transport:  transport,
		enricher:   enricher,
		indexer:    indexer,
		dispatcher: dispatcher,
		qaEngine:   qaEngine,
		pipe:       pipe,
		logger:     slog.Default(),
	}, nil
}

// Close releases every component. The pipeline is stopped first when
// running.
func (s *System) Close() error {
	if s.pipe.Running() {
		if err := s.pipe.Stop(); err != nil {
			s.logger.Error("error stopping pipeline", "err", err)
		}
	}

	s.enricher.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.mailRepo.Close(); err != nil {
		s.logger.Error("error closing mail repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing archive backend", "err", err)
		return err
	}
	return nil
}

// Pipeline returns the orchestrator for start/stop control.
func (s *System) Pipeline() *pipeline.Pipeline {
	return s.pipe
}

// MailRepository returns the mail archive.
func (s *System) MailRepository() storage.MailRepository {
	return s.mailRepo
}

// Dispatcher returns the notification dispatcher.
func (s *System) Dispatcher() *notify.Dispatcher {
	return s.dispatcher
}

// Ask answers a question against the indexed mail.
func (s *System) Ask(ctx context.Context, question string) (*core.Answer, error) {
	return s.qaEngine.Ask(ctx, question)
}

// Search returns the k chunks closest to the query.
func (s *System) Search(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	return s.indexer.Search(ctx, query, k)
}

// SendMail delivers an outgoing message through the transport,
// connecting first when needed.
func (s *System) SendMail(ctx context.Context, msg *mailbox.OutgoingMail) error {
	if !s.transport.Connected() {
		if err := s.transport.Connect(ctx); err != nil {
			return err
		}
	}
	return s.transport.Send(ctx, msg)
}

// RebuildIndex re-indexes every archived mail record, atomically
// replacing the current index.
func (s *System) RebuildIndex(ctx context.Context) (int, error) {
	records, err := s.mailRepo.AllMailRecords(ctx)
	if err != nil {
		return 0, err
	}
	return s.indexer.Rebuild(ctx, records)
}

// Stats aggregates pipeline, index, and archive statistics.
type Stats struct {
	Pipeline     pipeline.Stats `json:"pipeline"`
	IndexEntries int            `json:"index_entries"`
	IndexMails   int            `json:"index_mails"`
	LastPersist  time.Time      `json:"last_persist"`
	ArchivedMail int            `json:"archived_mail"`
}

// Stats returns a point-in-time view of system activity.
func (s *System) Stats(ctx context.Context) (*Stats, error) {
	archived, err := s.mailRepo.CountMailRecords(ctx)
	if err != nil {
		return nil, err
	}

	idx := s.indexer.Stats()
	return &Stats{
		Pipeline:     s.pipe.Stats(),
		IndexEntries: idx.Entries,
		IndexMails:   idx.Mails,
		LastPersist:  idx.LastPersist,
		ArchivedMail: archived,
	}, nil
}
