package mailbox

import (
	"context"

	"github.com/poiesic/mailmind/core"
)

// OutgoingMail is a message handed to the transport for delivery.
type OutgoingMail struct {
	To      []string
	Subject string
	Body    string
}

// Transport is the mail-transport collaborator: the wire-protocol
// surface the pipeline fetches from and sends through. Implementations
// own session state; the pipeline holds the connection open and probes
// it before each cycle.
type Transport interface {
	// Connect establishes a session with the mail server.
	// Calling Connect on an already-connected transport is a no-op.
	Connect(ctx context.Context) error

	// Disconnect closes the session. Safe to call when not connected.
	Disconnect() error

	// Connected reports whether the session is currently usable.
	// Used as the pre-cycle probe; a false result triggers a reconnect.
	Connected() bool

	// ListFolders returns the names of the mailbox folders visible to
	// the account.
	ListFolders(ctx context.Context) ([]string, error)

	// FetchNew returns mail that arrived since the previous FetchNew
	// call (by unseen flag or since-timestamp, per implementation).
	// Returned records carry transport-assigned ids and raw bodies;
	// enrichment fields are unset.
	FetchNew(ctx context.Context) ([]*core.MailRecord, error)

	// Send delivers an outgoing message.
	Send(ctx context.Context, msg *OutgoingMail) error
}
