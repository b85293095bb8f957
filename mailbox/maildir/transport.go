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


package maildir

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/mailbox"
)

// Transport implements mailbox.Transport over a local Maildir tree.
type Transport struct {
	inbox  string
	outbox string
	sender string

	mu        sync.Mutex
	connected bool
	seq       int
	logger    *slog.Logger
}

var _ mailbox.Transport = (*Transport)(nil)

// Option configures a Transport.
type Option func(*Transport)

// WithSender sets the From address stamped on outgoing messages.
// Default is "mailmind@localhost".
func WithSender(sender string) Option {
	return func(t *Transport) {
		if sender != "" {
			t.sender = sender
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "maildir")
	}
}

// NewTransport creates a transport over the given inbox and outbox
// Maildir roots. Directories are created on Connect.
func NewTransport(inbox, outbox string, opts ...Option) (*Transport, error) {
	if inbox == "" || outbox == "" {
		return nil, mailbox.ErrConnectFailed
	}

	t := &Transport{
		inbox:  inbox,
		outbox: outbox,
		sender: "mailmind@localhost",
		logger: slog.Default().With("component", "maildir"),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Connect ensures both Maildir trees exist and marks the transport usable.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.connected {
		return nil
	}

	for _, dir := range []string{t.inbox, t.outbox} {
		for _, sub := range []string{"new", "cur", "tmp"} {
			if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
				return fmt.Errorf("%w: %v", mailbox.ErrConnectFailed, err)
			}
		}
	}

	t.connected = true
	t.logger.Info("maildir transport connected", "inbox", t.inbox)
	return nil
}

// Disconnect marks the transport unusable. No session state to tear down.
func (t *Transport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

// Connected reports whether Connect has succeeded. The inbox directory
// is probed so a deleted tree registers as a lost connection.
func (t *Transport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected {
		return false
	}
	if _, err := os.Stat(filepath.Join(t.inbox, "new")); err != nil {
		t.connected = false
		return false
	}
	return true
}

// ListFolders returns INBOX plus any Maildir++ subfolders (dot-prefixed
// directories under the inbox root).
func (t *Transport) ListFolders(ctx context.Context) ([]string, error) {
	if !t.Connected() {
		return nil, mailbox.ErrNotConnected
	}

	folders := []string{"INBOX"}
	entries, err := os.ReadDir(t.inbox)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mailbox.ErrFetchFailed, err)
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ".") {
			folders = append(folders, strings.TrimPrefix(entry.Name(), "."))
		}
	}
	return folders, nil
}

// FetchNew reads every message in inbox/new, oldest first, and moves
// each to inbox/cur with the seen flag so it is fetched exactly once.
// A message that fails to parse is moved aside, logged, and skipped.
func (t *Transport) FetchNew(ctx context.Context) ([]*core.MailRecord, error) {
	if !t.Connected() {
		return nil, mailbox.ErrNotConnected
	}

	newDir := filepath.Join(t.inbox, "new")
	entries, err := os.ReadDir(newDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mailbox.ErrFetchFailed, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var records []*core.MailRecord
	for _, name := range names {
		path := filepath.Join(newDir, name)

		file, err := os.Open(path)
		if err != nil {
			t.logger.Warn("cannot open message, skipping", "file", name, "err", err)
			continue
		}

		record, parseErr := parseMessage(file, name)
		file.Close()

		// Seen regardless of parse outcome, so a bad message does not
		// wedge every future fetch
		seen := filepath.Join(t.inbox, "cur", name+":2,S")
		if err := os.Rename(path, seen); err != nil {
			t.logger.Warn("cannot mark message seen", "file", name, "err", err)
		}

		if parseErr != nil {
			t.logger.Warn("unparseable message, skipping", "file", name, "err", parseErr)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// Send delivers a message into the outbox Maildir: written fully under
// tmp/, then renamed into new/.
func (t *Transport) Send(ctx context.Context, msg *mailbox.OutgoingMail) error {
	if !t.Connected() {
		return mailbox.ErrNotConnected
	}

	t.mu.Lock()
	t.seq++
	name := fmt.Sprintf("%d.%d_%d.mailmind", time.Now().Unix(), os.Getpid(), t.seq)
	t.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", t.sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	tmpPath := filepath.Join(t.outbox, "tmp", name)
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %v", mailbox.ErrSendFailed, err)
	}
	if err := os.Rename(tmpPath, filepath.Join(t.outbox, "new", name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", mailbox.ErrSendFailed, err)
	}

	t.logger.Debug("message delivered to outbox", "subject", msg.Subject)
	return nil
}
