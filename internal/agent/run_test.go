package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/llm/providers"
	"github.com/zero-day-ai/graphchat/internal/tool"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func TestRun_AnswersEachLine(t *testing.T) {
	f := newFixture(t, DefaultConfig(), []providers.MockResponse{
		providers.TextResponse("first answer"),
		providers.TextResponse("second answer"),
	})

	out := &bytes.Buffer{}
	err := f.agent.Run(context.Background(), strings.NewReader("q1\n\n   \nq2\n"), out)
	require.NoError(t, err)

	assert.Equal(t, "\nfirst answer\n\n\nsecond answer\n\n", out.String())
	assert.Len(t, f.provider.GetCalls(), 2)

	msgs := f.agent.Conversation().Messages()
	assert.Equal(t, "q1", msgs[1].Content)
	assert.Equal(t, "q2", msgs[3].Content)
}

func TestRun_InputPrompt(t *testing.T) {
	f := newFixture(t, DefaultConfig(), []providers.MockResponse{providers.TextResponse("a")})

	prompts := &bytes.Buffer{}
	out := &bytes.Buffer{}
	err := f.agent.Run(context.Background(), strings.NewReader("q\n"), out,
		WithInputPrompt(prompts, DefaultInputPrompt))
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(prompts.String(), DefaultInputPrompt))
	assert.NotContains(t, out.String(), DefaultInputPrompt)
}

func TestRun_EmptyInput(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil)

	err := f.agent.Run(context.Background(), strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	assert.Empty(t, f.provider.GetCalls())
}

func TestRun_TurnErrorEndsSession(t *testing.T) {
	f := newFixture(t, DefaultConfig(), []providers.MockResponse{
		providers.ToolCallResponse("delete_everything", `{}`),
		providers.TextResponse("never reached"),
	})

	out := &bytes.Buffer{}
	err := f.agent.Run(context.Background(), strings.NewReader("q1\nq2\n"), out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tool.ErrUnknownTool))
	assert.Empty(t, out.String())
	assert.Len(t, f.provider.GetCalls(), 1)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.agent.Run(ctx, strings.NewReader("q1\n"), io.Discard)
	require.NoError(t, err)
	assert.Empty(t, f.provider.GetCalls())
}

func TestRun_CanceledWhileWaitingForInput(t *testing.T) {
	f := newFixture(t, DefaultConfig(), []providers.MockResponse{providers.TextResponse("a1")})

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	out := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() { done <- f.agent.Run(ctx, pr, out) }()

	_, err := io.WriteString(pw, "q1\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.provider.GetCalls()) == 1 && f.agent.State() == StateAwaitingUserInput
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	require.NoError(t, pw.Close())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestRun_ReadError(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil)

	err := f.agent.Run(context.Background(), failingReader{}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInputFailed, types.CodeOf(err))
}
