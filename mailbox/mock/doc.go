// Package mock provides a scriptable in-memory implementation of
// mailbox.Transport for tests. Batches queued with QueueBatch are
// returned by successive FetchNew calls; sent messages are recorded for
// assertions; every method supports custom behavior injection via
// function fields.
package mock
