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


package mock

import (
	"context"
	"sync"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/mailbox"
)

// MockTransport is a test double for mailbox.Transport.
// It allows custom behavior injection via function fields and records
// sent messages for assertions.
type MockTransport struct {
	// ConnectFunc is called by Connect if set.
	ConnectFunc func(ctx context.Context) error

	// FetchNewFunc is called by FetchNew if set.
	// If nil, FetchNew pops the next queued batch.
	FetchNewFunc func(ctx context.Context) ([]*core.MailRecord, error)

	// SendFunc is called by Send if set.
	// If nil, Send records the message and succeeds.
	SendFunc func(ctx context.Context, msg *mailbox.OutgoingMail) error

	// Folders is returned by ListFolders. Defaults to ["INBOX"].
	Folders []string

	mu        sync.Mutex
	connected bool
	queued    [][]*core.MailRecord
	sent      []*mailbox.OutgoingMail

	connectCount int
	fetchCount   int
	sendCount    int
}

var _ mailbox.Transport = (*MockTransport)(nil)

// NewMockTransport creates a mock transport in the disconnected state.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		Folders: []string{"INBOX"},
	}
}

// QueueBatch appends a batch of records for a future FetchNew call.
// Each FetchNew consumes one batch; an empty queue yields no mail.
func (m *MockTransport) QueueBatch(records ...*core.MailRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, records)
}

// Connect marks the transport connected.
func (m *MockTransport) Connect(ctx context.Context) error {
	m.mu.Lock()
	m.connectCount++
	m.mu.Unlock()

	if m.ConnectFunc != nil {
		if err := m.ConnectFunc(ctx); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.connected = true
	m.mu.Unlock()
	return nil
}

// Disconnect marks the transport disconnected.
func (m *MockTransport) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// Connected reports the current connection state.
func (m *MockTransport) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// SetConnected forces the connection state, simulating a dropped session.
func (m *MockTransport) SetConnected(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = connected
}

// ListFolders returns the configured folder list.
func (m *MockTransport) ListFolders(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return nil, mailbox.ErrNotConnected
	}
	return m.Folders, nil
}

// FetchNew pops the next queued batch, or returns no mail when the
// queue is empty.
func (m *MockTransport) FetchNew(ctx context.Context) ([]*core.MailRecord, error) {
	m.mu.Lock()
	m.fetchCount++
	connected := m.connected
	m.mu.Unlock()

	if m.FetchNewFunc != nil {
		return m.FetchNewFunc(ctx)
	}

	if !connected {
		return nil, mailbox.ErrNotConnected
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queued) == 0 {
		return nil, nil
	}
	batch := m.queued[0]
	m.queued = m.queued[1:]
	return batch, nil
}

// Send records the outgoing message.
func (m *MockTransport) Send(ctx context.Context, msg *mailbox.OutgoingMail) error {
	m.mu.Lock()
	m.sendCount++
	connected := m.connected
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}

	if !connected {
		return mailbox.ErrNotConnected
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the messages delivered so far.
func (m *MockTransport) Sent() []*mailbox.OutgoingMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*mailbox.OutgoingMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// ConnectCount returns the number of Connect calls.
func (m *MockTransport) ConnectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectCount
}

// FetchCount returns the number of FetchNew calls.
func (m *MockTransport) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCount
}

// SendCount returns the number of Send calls, including failed ones.
func (m *MockTransport) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCount
}

// Reset clears recorded state, queued batches, and custom functions.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	m.queued = nil
	m.sent = nil
	m.connectCount = 0
	m.fetchCount = 0
	m.sendCount = 0
	m.ConnectFunc = nil
	m.FetchNewFunc = nil
	m.SendFunc = nil
}
