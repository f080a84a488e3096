package cli

import (
	"io"

	"github.com/HRehwald/PoolChat/pkg/logger"
)

const defaultPrompt = "Ask a question> "

// Option applies a configuration option to the REPL.
type Option func(*REPL)

// WithReader sets the line source. Defaults to a liner-backed terminal
// reader.
func WithReader(r LineReader) Option {
	return func(repl *REPL) {
		if r != nil {
			repl.in = r
		}
	}
}

// WithOutput sets where answers are printed.
func WithOutput(w io.Writer) Option {
	return func(repl *REPL) {
		if w != nil {
			repl.out = w
		}
	}
}

// WithPrompt overrides the input prompt.
func WithPrompt(prompt string) Option {
	return func(repl *REPL) {
		repl.prompt = prompt
	}
}

// WithLogger sets a custom logger for the REPL.
func WithLogger(logger logger.Logger) Option {
	return func(repl *REPL) {
		if logger != nil {
			repl.logger = logger
		}
	}
}
