// Package storage defines the persistence interfaces for the mail archive
// and the binary serialization helpers shared by storage backends and the
// vector index snapshot.
package storage
