package notify

import "errors"

var (
	// ErrTransportRequired indicates NewDispatcher was called without a transport.
	ErrTransportRequired = errors.New("notify: transport is required")

	// ErrRecipientsRequired indicates NewDispatcher was called without
	// any notification recipients.
	ErrRecipientsRequired = errors.New("notify: at least one recipient is required")
)
