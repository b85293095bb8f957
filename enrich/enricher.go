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


package enrich

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mailmind/ai"
	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/normalize"
)

const (
	// DefaultSummaryBound is the maximum document length fed to the
	// summarization call.
	DefaultSummaryBound = 4000

	// DefaultClassifyBound is the maximum content length fed to the
	// classification call.
	DefaultClassifyBound = 2000

	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// Enricher runs summarization and classification over mail records.
// Both calls are independent per mail; neither failure propagates.
type Enricher struct {
	summarizer    ai.Summarizer
	classifier    ai.Classifier
	pool          *ants.Pool
	summaryBound  int
	classifyBound int
	logger        *slog.Logger
}

// BatchStats reports the outcome of an EnrichBatch call.
type BatchStats struct {
	// Total is the number of records processed.
	Total int

	// Summarized counts records whose summarization call succeeded.
	Summarized int

	// Classified counts records whose classification call succeeded.
	Classified int
}

// Option configures an Enricher.
type Option func(*Enricher) error

// WithPoolSize sets the worker pool size for batch enrichment.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Enricher) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "enricher")
		return nil
	}
}

// WithSummaryBound sets the maximum document length for summarization.
func WithSummaryBound(bound int) Option {
	return func(e *Enricher) error {
		if bound > 0 {
			e.summaryBound = bound
		}
		return nil
	}
}

// WithClassifyBound sets the maximum content length for classification.
func WithClassifyBound(bound int) Option {
	return func(e *Enricher) error {
		if bound > 0 {
			e.classifyBound = bound
		}
		return nil
	}
}

// NewEnricher creates an enricher using the given model services.
func NewEnricher(summarizer ai.Summarizer, classifier ai.Classifier, opts ...Option) (*Enricher, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		summarizer:    summarizer,
		classifier:    classifier,
		pool:          pool,
		summaryBound:  DefaultSummaryBound,
		classifyBound: DefaultClassifyBound,
		logger:        slog.Default().With("component", "enricher"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Enrich mutates the record in place with summarization and
// classification output. Each call's failure is contained: a failed
// summarization leaves summary/key info unset, a failed classification
// leaves the default labels. Never returns an error; the two boolean
// results report which calls succeeded.
func (e *Enricher) Enrich(ctx context.Context, record *core.MailRecord) (summarized, classified bool) {
	document := normalize.ComposeDocument(record, false)
	summaryInput := truncateToBound(document, e.summaryBound, defaultChunkSize, defaultChunkOverlap)

	summary, err := e.summarizer.Summarize(ctx, summaryInput)
	if err != nil {
		e.logger.Warn("summarization failed, keeping raw content",
			"mail", record.Id, "err", err)
	} else {
		record.Summary = summary.Summary
		record.KeyInfo = core.KeyInfo{
			KeyPoints:      summary.KeyPoints,
			ActionItems:    summary.ActionItems,
			ImportantDates: summary.ImportantDates,
			Contacts:       summary.Contacts,
		}
		summarized = true
	}

	content := truncateToBound(document, e.classifyBound, defaultChunkSize, defaultChunkOverlap)

	classification, err := e.classifier.Classify(ctx, record.Subject, record.Sender, content)
	if err != nil {
		e.logger.Warn("classification failed, applying default labels",
			"mail", record.Id, "err", err)
	} else {
		record.Importance = core.ParseImportance(classification.Importance)
		record.Category = core.ParseCategory(classification.Category)
		classified = true
	}

	// Labels must never be left unset
	record.ApplyClassificationDefaults()
	return summarized, classified
}

// EnrichBatch enriches records concurrently on the worker pool. Every
// record is processed regardless of other records' failures; each mail
// mutates only its own record, so no batch-level locking is needed.
func (e *Enricher) EnrichBatch(ctx context.Context, records []*core.MailRecord) BatchStats {
	stats := BatchStats{Total: len(records)}
	if len(records) == 0 {
		return stats
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, record := range records {
		record := record
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			summarized, classified := e.Enrich(ctx, record)
			mu.Lock()
			if summarized {
				stats.Summarized++
			}
			if classified {
				stats.Classified++
			}
			mu.Unlock()
		})
		if err != nil {
			// Pool rejected the task; run inline so the mail is not lost
			e.logger.Warn("pool submit failed, enriching inline", "mail", record.Id, "err", err)
			summarized, classified := e.Enrich(ctx, record)
			mu.Lock()
			if summarized {
				stats.Summarized++
			}
			if classified {
				stats.Classified++
			}
			mu.Unlock()
			wg.Done()
		}
	}

	wg.Wait()

	e.logger.Debug("batch enrichment complete",
		"total", stats.Total,
		"summarized", stats.Summarized,
		"classified", stats.Classified)
	return stats
}

// Release releases the worker pool.
// The enricher should not be used after calling Release.
func (e *Enricher) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
