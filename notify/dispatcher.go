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


package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/mailbox"
)

// Dispatcher sends notifications through the mail transport.
type Dispatcher struct {
	transport  mailbox.Transport
	recipients []string
	logger     *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "notify")
	}
}

// NewDispatcher creates a dispatcher delivering to the given recipients.
func NewDispatcher(transport mailbox.Transport, recipients []string, opts ...Option) (*Dispatcher, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}
	if len(recipients) == 0 {
		return nil, ErrRecipientsRequired
	}

	d := &Dispatcher{
		transport:  transport,
		recipients: recipients,
		logger:     slog.Default().With("component", "notify"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Dispatch sends at most one notification for the cycle's enriched
// batch: nothing when no mail is high-importance, a focused message for
// exactly one, a single aggregated digest for several. Returns whether
// a notification was delivered. Delivery failures are contained.
func (d *Dispatcher) Dispatch(ctx context.Context, batch []*core.MailRecord) bool {
	var high []*core.MailRecord
	for _, record := range batch {
		if record.Importance == core.ImportanceHigh {
			high = append(high, record)
		}
	}

	if len(high) == 0 {
		d.logger.Debug("no high-importance mail in batch", "batch", len(batch))
		return false
	}

	var subject, body string
	if len(high) == 1 {
		subject, body = buildFocused(high[0])
	} else {
		subject, body = buildDigest(high)
	}

	if !d.send(ctx, subject, body) {
		return false
	}

	d.logger.Info("dispatched notification", "highImportance", len(high))
	return true
}

// SendSystem delivers an operational notice (startup, shutdown,
// rebuild complete). Same containment as Dispatch.
func (d *Dispatcher) SendSystem(ctx context.Context, subject, body string) bool {
	return d.send(ctx, "[mailmind] "+subject, body)
}

// SendError delivers a best-effort error report for a failed pipeline
// cycle. Never fails the caller.
func (d *Dispatcher) SendError(ctx context.Context, stage string, cause error) bool {
	subject := "[mailmind] pipeline error"
	body := fmt.Sprintf("The pipeline hit an error during %s at %s:\n\n%v\n",
		stage, time.Now().UTC().Format(time.RFC3339), cause)
	return d.send(ctx, subject, body)
}

// SendTest delivers a test notification used to verify the delivery path.
func (d *Dispatcher) SendTest(ctx context.Context) bool {
	body := fmt.Sprintf("Test notification sent at %s. Delivery is working.\n",
		time.Now().UTC().Format(time.RFC3339))
	return d.send(ctx, "[mailmind] test notification", body)
}

// send delivers one message with a single retry. Failure after the
// retry is logged and swallowed; notification failures must never
// abort the pipeline cycle.
func (d *Dispatcher) send(ctx context.Context, subject, body string) bool {
	msg := &mailbox.OutgoingMail{
		To:      d.recipients,
		Subject: subject,
		Body:    body,
	}

	err := d.transport.Send(ctx, msg)
	if err == nil {
		return true
	}

	d.logger.Warn("notification send failed, retrying once", "err", err)
	if err = d.transport.Send(ctx, msg); err == nil {
		return true
	}

	d.logger.Error("notification send failed after retry, dropping",
		"subject", subject, "err", fmt.Errorf("%w: %v", core.ErrNotificationDelivery, err))
	return false
}
