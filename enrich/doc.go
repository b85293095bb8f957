// Package enrich runs the two model calls that enrich a fetched mail:
// summarization with key-information extraction, and importance/category
// classification. The calls are independent; failure of either is
// contained to that mail, which falls back to its raw content and
// default labels. Batches run on a bounded worker pool.
package enrich
