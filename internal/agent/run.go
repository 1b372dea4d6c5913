package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zero-day-ai/graphchat/internal/types"
)

const maxLineBytes = 1 << 20

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	promptOut io.Writer
	prompt    string
}

// WithInputPrompt writes prompt to w before each question is read.
func WithInputPrompt(w io.Writer, prompt string) RunOption {
	return func(o *runOptions) {
		o.promptOut = w
		o.prompt = prompt
	}
}

type line struct {
	text string
	err  error
}

// Run reads one question per line from in and writes each answer to out.
// Blank lines are skipped. It returns nil at end of input or when ctx is
// done between turns, and the turn error when a turn fails.
func (a *Agent) Run(ctx context.Context, in io.Reader, out io.Writer, opts ...RunOption) error {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	lines := make(chan line)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- line{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-done:
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			a.logger.Info(ctx, "session ended", "reason", "canceled")
			return nil
		}

		if o.promptOut != nil && o.prompt != "" {
			fmt.Fprintln(o.promptOut, o.prompt)
		}

		var next line
		var ok bool
		select {
		case <-ctx.Done():
			a.logger.Info(ctx, "session ended", "reason", "canceled")
			return nil
		case next, ok = <-lines:
		}

		if !ok {
			a.logger.Info(ctx, "session ended", "reason", "eof")
			return nil
		}
		if next.err != nil {
			return types.WrapError(ErrCodeInputFailed, "failed to read question", next.err)
		}

		question := strings.TrimSpace(next.text)
		if question == "" {
			continue
		}

		answer, err := a.Ask(ctx, question)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(out, "\n%s\n\n", answer); err != nil {
			return types.WrapError(ErrCodeInputFailed, "failed to write answer", err)
		}
	}
}
