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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/enrich"
	"github.com/poiesic/mailmind/index"
	"github.com/poiesic/mailmind/mailbox"
	"github.com/poiesic/mailmind/notify"
	"github.com/poiesic/mailmind/storage"
)

const (
	// DefaultInterval is the pause between successful cycles.
	DefaultInterval = 5 * time.Minute

	// DefaultBackoff is the pause after a failed cycle.
	DefaultBackoff = 60 * time.Second
)

// Stats counts pipeline activity since startup.
type Stats struct {
	Cycles            int
	EmptyCycles       int
	CycleErrors       int
	MailsFetched      int
	MailsSummarized   int
	MailsClassified   int
	MailsIndexed      int
	NotificationsSent int
	LastCheck         time.Time
	LastError         string
}

// Pipeline sequences the periodic mail processing cycle.
type Pipeline struct {
	transport  mailbox.Transport
	enricher   *enrich.Enricher
	indexer    *index.Manager
	dispatcher *notify.Dispatcher
	archive    storage.MailRepository

	interval time.Duration
	backoff  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	cycleMu sync.Mutex
	statsMu sync.Mutex
	stats   Stats
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithInterval sets the pause between successful cycles.
func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d > 0 {
			p.interval = d
		}
		return nil
	}
}

// WithBackoff sets the pause after a failed cycle.
func WithBackoff(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d > 0 {
			p.backoff = d
		}
		return nil
	}
}

// WithArchive sets the repository that retains fetched mail for the
// gateway and for index rebuilds. Without it, records are discarded
// after indexing.
func WithArchive(repo storage.MailRepository) Option {
	return func(p *Pipeline) error {
		p.archive = repo
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "pipeline")
		return nil
	}
}

// New creates a pipeline over the given collaborators.
func New(
	transport mailbox.Transport,
	enricher *enrich.Enricher,
	indexer *index.Manager,
	dispatcher *notify.Dispatcher,
	opts ...Option,
) (*Pipeline, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}
	if indexer == nil {
		return nil, ErrIndexRequired
	}
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}

	p := &Pipeline{
		transport:  transport,
		enricher:   enricher,
		indexer:    indexer,
		dispatcher: dispatcher,
		interval:   DefaultInterval,
		backoff:    DefaultBackoff,
		logger:     slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Start connects the transport and launches the periodic loop. A
// failed initial connection is fatal: the loop never starts. The first
// cycle runs immediately.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	if err := p.transport.Connect(ctx); err != nil {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
		return fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	p.logger.Info("pipeline started", "interval", p.interval)
	go p.run(ctx)
	return nil
}

// Stop signals the loop to end and waits for the in-flight cycle to
// finish, then disconnects the transport.
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.running = false
	close(p.stopCh)
	done := p.doneCh
	p.mu.Unlock()

	<-done

	if err := p.transport.Disconnect(); err != nil {
		p.logger.Warn("transport disconnect failed", "err", err)
	}
	p.logger.Info("pipeline stopped")
	return nil
}

// Running reports whether the loop is active.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Stats returns a copy of the counters.
func (p *Pipeline) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// update applies a stats mutation under the stats lock.
func (p *Pipeline) update(fn func(*Stats)) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	fn(&p.stats)
}

// RunOnce executes a single cycle synchronously. Used by the CLI and
// by the loop itself.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()
	return p.cycle(ctx)
}

func (p *Pipeline) run(ctx context.Context) {
	defer close(p.doneCh)

	for {
		err := p.RunOnce(ctx)

		delay := p.interval
		if err != nil {
			p.logger.Error("cycle failed, backing off", "backoff", p.backoff, "err", err)
			// Best-effort: a broken notification path must not stop the loop
			p.dispatcher.SendError(ctx, "cycle", err)
			delay = p.backoff
		}

		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// cycle runs one fetch → enrich → index → notify pass. Any stage error
// is returned to the loop boundary; per-mail failures inside enrichment
// and embedding are already contained by those components.
func (p *Pipeline) cycle(ctx context.Context) error {
	p.update(func(s *Stats) {
		s.Cycles++
		s.LastCheck = time.Now().UTC()
	})

	if !p.transport.Connected() {
		p.logger.Info("transport disconnected, reconnecting")
		if err := p.transport.Connect(ctx); err != nil {
			return p.fail("connect", err)
		}
	}

	records, err := p.transport.FetchNew(ctx)
	if err != nil {
		return p.fail("fetch", err)
	}

	if len(records) == 0 {
		p.update(func(s *Stats) { s.EmptyCycles++ })
		p.logger.Debug("no new mail")
		return nil
	}

	p.update(func(s *Stats) { s.MailsFetched += len(records) })
	p.logger.Info("fetched new mail", "count", len(records))

	batch := p.enricher.EnrichBatch(ctx, records)
	p.update(func(s *Stats) {
		s.MailsSummarized += batch.Summarized
		s.MailsClassified += batch.Classified
	})

	indexed, err := p.indexer.Add(ctx, records)
	if err != nil {
		return p.fail("index", err)
	}
	p.update(func(s *Stats) { s.MailsIndexed += indexed })

	if p.archive != nil {
		if err := p.archive.AddMailRecords(ctx, records...); err != nil {
			// Archive is supplementary; the index already holds the content
			p.logger.Warn("archiving fetched mail failed", "err", err)
		}
	}

	if p.dispatcher.Dispatch(ctx, records) {
		p.update(func(s *Stats) { s.NotificationsSent++ })
	}

	return nil
}

func (p *Pipeline) fail(stage string, err error) error {
	wrapped := fmt.Errorf("%s: %w", stage, err)
	p.update(func(s *Stats) {
		s.CycleErrors++
		s.LastError = wrapped.Error()
	})
	return wrapped
}
