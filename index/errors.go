package index

import "errors"

var (
	// ErrEmbedderRequired indicates NewManager was called without an embedder.
	ErrEmbedderRequired = errors.New("index: embedder is required")

	// ErrDirRequired indicates NewManager was called without a snapshot directory.
	ErrDirRequired = errors.New("index: snapshot directory is required")

	// ErrInvalidQuery indicates a Search call with an empty query or
	// non-positive k.
	ErrInvalidQuery = errors.New("index: invalid query")

	// ErrSnapshotCorrupt indicates a snapshot file failed to decode.
	ErrSnapshotCorrupt = errors.New("index: snapshot corrupt")
)
