// Package mailbox defines the mail-transport collaborator boundary: the
// connect/fetch/send primitives the pipeline relies on. Concrete wire
// protocols (IMAP, JMAP, provider APIs) live behind the Transport
// interface; the mock subpackage provides a scriptable in-memory
// transport for tests.
package mailbox
