// Package qa answers free-text questions against the mail index.
// Top-k chunks are retrieved, concatenated into a bounded context, and
// handed to the completion model with instructions to answer only from
// that context. The result carries the cited source chunks. A failed
// model call yields an answer describing the failure with no sources,
// never an error to the caller.
package qa
