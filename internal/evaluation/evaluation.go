// Package evaluation replays a fixed set of questions through the assistant
// and checks each guardrail decision against the expected outcome.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/internal/domain/types"
)

// Case is one labelled question.
type Case struct {
	Question        string             `json:"question"`
	ExpectedOutcome model.DecisionKind `json:"expected_outcome"`
}

// Result is the outcome of replaying one Case.
type Result struct {
	Index  int
	Case   Case
	Answer types.Answer
}

// Got returns the decision the assistant produced.
func (r Result) Got() model.DecisionKind { return r.Answer.Decision }

// Pass reports whether the decision matched the expectation.
func (r Result) Pass() bool { return r.Answer.Decision == r.Case.ExpectedOutcome }

// Report collects every Result of a run.
type Report struct {
	Results []Result
	Passed  int
}

// Total is the number of cases replayed.
func (r *Report) Total() int { return len(r.Results) }

// AllPassed reports whether every case matched.
func (r *Report) AllPassed() bool { return r.Passed == len(r.Results) }

// Asker answers one question.
type Asker interface {
	Ask(ctx context.Context, question string) (types.Answer, error)
}

// LoadCases reads a JSON array of cases. Comments and trailing commas are
// tolerated.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCases, err)
	}
	var cases []Case
	if err := json.Unmarshal(jsonc.ToJSON(data), &cases); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrLoadCases, path, err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCases, path)
	}
	return cases, nil
}

// Run replays cases in order. It stops at the first Ask error or when ctx
// is cancelled.
func Run(ctx context.Context, asker Asker, cases []Case) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(cases))}
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		ans, err := asker.Ask(ctx, c.Question)
		if err != nil {
			return report, fmt.Errorf("case %d: %w", i+1, err)
		}
		res := Result{Index: i + 1, Case: c, Answer: ans}
		if res.Pass() {
			report.Passed++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// Write prints one PASS/FAIL line per case followed by the total.
func (r *Report) Write(w io.Writer) error {
	for _, res := range r.Results {
		status := "FAIL"
		if res.Pass() {
			status = "PASS"
		}
		if _, err := fmt.Fprintf(w, "[%s] %02d expected=%s got=%s :: %s\n",
			status, res.Index, res.Case.ExpectedOutcome, res.Got(), res.Case.Question); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d/%d tests passed.\n", r.Passed, r.Total())
	return err
}
