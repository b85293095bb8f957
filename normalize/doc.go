// Package normalize turns a raw mail record into clean plain text for
// enrichment and indexing. When a mail carries only an HTML body, the
// visible text is extracted with script and style elements removed.
// Common signature blocks and forwarded-message headers are stripped
// with bounded pattern matches. Normalization is a pure transformation
// and never fails: on any parse anomaly it falls back to the raw body.
package normalize
