package cli

import "errors"

// ErrReadInput is returned when the line reader fails for a reason other
// than end of input or an aborted prompt.
var ErrReadInput = errors.New("read input")
