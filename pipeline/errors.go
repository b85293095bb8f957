package pipeline

import "errors"

var (
	// ErrTransportRequired indicates New was called without a transport.
	ErrTransportRequired = errors.New("pipeline: transport is required")

	// ErrEnricherRequired indicates New was called without an enricher.
	ErrEnricherRequired = errors.New("pipeline: enricher is required")

	// ErrIndexRequired indicates New was called without an index manager.
	ErrIndexRequired = errors.New("pipeline: index manager is required")

	// ErrDispatcherRequired indicates New was called without a dispatcher.
	ErrDispatcherRequired = errors.New("pipeline: dispatcher is required")

	// ErrAlreadyRunning indicates Start was called on a running pipeline.
	ErrAlreadyRunning = errors.New("pipeline: already running")

	// ErrNotRunning indicates Stop was called on a stopped pipeline.
	ErrNotRunning = errors.New("pipeline: not running")
)
