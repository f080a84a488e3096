package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/HRehwald/PoolChat/internal/adapters/cli"
	"github.com/HRehwald/PoolChat/internal/domain/model"
	"github.com/HRehwald/PoolChat/internal/domain/types"
	"github.com/HRehwald/PoolChat/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// scriptedReader replays fixed lines, then reports end of input.
type scriptedReader struct {
	lines   []string
	prompts int
	err     error
	closed  bool
}

func (s *scriptedReader) Prompt(string) (string, error) {
	s.prompts++
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedReader) Close() error {
	s.closed = true
	return nil
}

type fakeAssistant struct {
	asked []string
	err   error
}

func (f *fakeAssistant) Ask(_ context.Context, q string) (types.Answer, error) {
	f.asked = append(f.asked, q)
	if f.err != nil {
		return types.Answer{}, f.err
	}
	switch q {
	case "Is the pool open right now?":
		return types.Answer{
			Decision:   model.DecisionEscalated,
			Answer:     "Lap swim hours: Mon–Fri 6–9am.\n\nFor live status updates, Please contact the front desk at 555-0100.",
			Source:     "Website: Lap Swim",
			Escalation: "Please contact the front desk at 555-0100.",
		}, nil
	default:
		return types.Answer{Decision: model.DecisionAnswered, Answer: "Yes, lockers are available."}, nil
	}
}

func (f *fakeAssistant) Topics(context.Context) (types.Topics, error) {
	return types.Topics{Facility: model.Facility{Name: "Riverside Aquatics", Phone: "555-0100"}}, nil
}

func runScript(assistant cli.Assistant, lines ...string) (string, *scriptedReader, error) {
	in := &scriptedReader{lines: lines}
	var out bytes.Buffer
	repl := cli.New(assistant, cli.WithReader(in), cli.WithOutput(&out), cli.WithLogger(logger.Nop()))
	err := repl.Run(context.Background())
	return out.String(), in, err
}

func TestREPL(t *testing.T) {
	Convey("Given a REPL with a scripted user", t, func() {
		assistant := &fakeAssistant{}

		Convey("When a live-status question is asked", func() {
			out, _, err := runScript(assistant, "Is the pool open right now?", "/quit")

			Convey("Then the answer, source and escalation are printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "\nLap swim hours: Mon–Fri 6–9am.")
				So(out, ShouldContainSubstring, "\nSource: Website: Lap Swim\n")
				So(out, ShouldContainSubstring, "\nEscalation: Please contact the front desk at 555-0100.\n")
				So(out, ShouldEndWith, "Goodbye.\n")
			})
		})

		Convey("When an answer has no source", func() {
			out, _, _ := runScript(assistant, "lockers?", "exit")

			Convey("Then no Source line is printed", func() {
				So(out, ShouldContainSubstring, "Yes, lockers are available.")
				So(out, ShouldNotContainSubstring, "Source:")
				So(out, ShouldNotContainSubstring, "Escalation:")
			})
		})

		Convey("When input is blank or padded", func() {
			_, in, _ := runScript(assistant, "", "   ", "  lockers?  ", "QUIT")

			Convey("Then blanks are skipped and questions are trimmed", func() {
				So(assistant.asked, ShouldResemble, []string{"lockers?"})
				So(in.prompts, ShouldEqual, 4)
			})
		})

		Convey("When slash commands are used", func() {
			out, _, _ := runScript(assistant, "/help", "/TOPICS", "quit")

			Convey("Then they are handled locally", func() {
				So(out, ShouldContainSubstring, "/topics        Show supported topics")
				So(out, ShouldContainSubstring, "Supported topics:")
				So(out, ShouldContainSubstring, "Facility: Riverside Aquatics (555-0100)")
				So(assistant.asked, ShouldBeEmpty)
			})
		})

		Convey("When input ends without a quit command", func() {
			out, _, err := runScript(assistant, "lockers?")

			Convey("Then the loop exits cleanly", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEndWith, "Goodbye.\n")
			})
		})

		Convey("When the assistant fails", func() {
			assistant.err = errors.New("not started")
			out, _, err := runScript(assistant, "lockers?", "/quit")

			Convey("Then the error is shown and the loop continues", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "something went wrong: not started")
				So(out, ShouldEndWith, "Goodbye.\n")
			})
		})
	})

	Convey("Given a reader that fails", t, func() {
		in := &scriptedReader{err: errors.New("tty gone")}
		repl := cli.New(&fakeAssistant{}, cli.WithReader(in), cli.WithOutput(io.Discard), cli.WithLogger(logger.Nop()))
		err := repl.Run(context.Background())

		So(errors.Is(err, cli.ErrReadInput), ShouldBeTrue)
		So(repl.Close(), ShouldBeNil)
		So(in.closed, ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		in := &scriptedReader{lines: []string{"lockers?"}}
		assistant := &fakeAssistant{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		repl := cli.New(assistant, cli.WithReader(in), cli.WithOutput(io.Discard), cli.WithLogger(logger.Nop()))
		So(repl.Run(ctx), ShouldBeNil)
		So(in.prompts, ShouldEqual, 0)
	})
}
