package intent

import "errors"

// Sentinel kinds for label parsing.
var (
	ErrUnknownLabel = errors.New("unknown label")
)
