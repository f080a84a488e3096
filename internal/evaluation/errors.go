package evaluation

import "errors"

// Error kinds returned by the harness.
var (
	ErrLoadCases = errors.New("load evaluation cases")
	ErrNoCases   = errors.New("no evaluation cases")
)
