// Package notify dispatches outbound notifications for high-importance
// mail. Each pipeline cycle produces at most one message: a focused
// message for a single high-importance mail, or one aggregated digest
// when several arrive together. Delivery failures are retried once,
// then logged and swallowed so a broken notification path never aborts
// a pipeline cycle.
package notify
