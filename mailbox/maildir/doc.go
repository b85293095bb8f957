// Package maildir implements mailbox.Transport over a local Maildir
// tree. New mail is read from inbox/new and moved to inbox/cur once
// fetched; outgoing messages are delivered into an outbox Maildir with
// the usual tmp-then-rename handoff. Useful with any local delivery
// agent (procmail, fetchmail, offlineimap) and in integration tests.
package maildir
