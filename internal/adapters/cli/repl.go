// Package cli provides the interactive question prompt.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/HRehwald/PoolChat/internal/domain/types"
	"github.com/HRehwald/PoolChat/pkg/logger"
)

// Assistant answers questions for the REPL.
type Assistant interface {
	Ask(ctx context.Context, question string) (types.Answer, error)
	Topics(ctx context.Context) (types.Topics, error)
}

// REPL reads questions, prints guardrailed answers and handles the slash
// commands.
type REPL struct {
	assistant Assistant
	in        LineReader
	out       io.Writer
	prompt    string
	logger    logger.Logger
}

// New creates a REPL. Without WithReader the terminal is used, so the caller
// must call Close when done.
func New(assistant Assistant, opts ...Option) *REPL {
	r := &REPL{
		assistant: assistant,
		out:       os.Stdout,
		prompt:    defaultPrompt,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	if r.in == nil {
		r.in = NewTerminalReader("")
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("cli")
	}
	return r
}

// Close releases the line reader.
func (r *REPL) Close() error {
	return r.in.Close()
}

// Run loops until the user quits, input ends or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	r.printf("Aquatics Services Assistant\nType /help for commands.\n\n")

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.in.Prompt(r.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				r.printf("\nGoodbye.\n")
				return nil
			}
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		q := strings.TrimSpace(input)
		if q == "" {
			continue
		}

		switch strings.ToLower(q) {
		case "/quit", "quit", "exit":
			r.printf("Goodbye.\n")
			return nil
		case "/help":
			r.printHelp()
			continue
		case "/topics":
			r.printTopics(ctx)
			continue
		}

		ans, err := r.assistant.Ask(ctx, q)
		if err != nil {
			r.logger.Error(ctx, "question failed", logger.Error(err))
			r.printf("\nSorry, something went wrong: %v\n\n", err)
			continue
		}
		r.printAnswer(ans)
	}
}

func (r *REPL) printAnswer(ans types.Answer) { //nolint:gocritic // hugeParam: Answer is a value snapshot
	r.printf("\n%s\n", ans.Answer)
	if ans.Source != "" {
		r.printf("\nSource: %s\n", ans.Source)
	}
	if ans.Escalation != "" {
		r.printf("\nEscalation: %s\n", ans.Escalation)
	}
	r.printf("\n")
}

func (r *REPL) printHelp() {
	r.printf("\nCommands:\n" +
		"  /help          Show this help\n" +
		"  /topics        Show supported topics\n" +
		"  /quit          Exit\n\n")
}

func (r *REPL) printTopics(ctx context.Context) {
	r.printf("\nSupported topics:\n" +
		"- Hours / schedules (lap swim, teen lap swim, recreation swim)\n" +
		"- Fees / passes\n" +
		"- Rules & policies (circle swim, age limits, diapers, lifejackets, glass)\n" +
		"- Swim lessons (registration, refund policy overview, levels)\n" +
		"- Facility info (address, phone, amenities, lockers)\n" +
		"- Contact & escalation\n")

	topics, err := r.assistant.Topics(ctx)
	if err != nil {
		r.logger.Warn(ctx, "topics unavailable", logger.Error(err))
		r.printf("\n")
		return
	}
	if f := topics.Facility; f.Name != "" || f.Phone != "" {
		r.printf("\nFacility: %s", f.Name)
		if f.Phone != "" {
			r.printf(" (%s)", f.Phone)
		}
		r.printf("\n")
	}
	r.printf("\n")
}

func (r *REPL) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
