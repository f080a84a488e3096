package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// historyFileMode keeps the question history private to the user.
const historyFileMode = 0o600

// LineReader yields one line of user input per call. Implementations return
// io.EOF when input ends.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// TerminalReader reads from the terminal with line editing and history.
type TerminalReader struct {
	line        *liner.State
	historyFile string
}

// NewTerminalReader creates a TerminalReader. An empty historyFile disables
// history persistence.
func NewTerminalReader(historyFile string) *TerminalReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &TerminalReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

// Prompt reads a line and adds non-empty input to the history.
func (r *TerminalReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (r *TerminalReader) Close() error {
	r.saveHistory()
	return r.line.Close()
}

func (r *TerminalReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *TerminalReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, historyFileMode)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = r.line.WriteHistory(f)
}
