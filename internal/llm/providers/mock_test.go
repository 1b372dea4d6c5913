package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func TestMockProvider_ConsumesScriptInOrder(t *testing.T) {
	p := NewMockProvider(
		ToolCallResponse("run_cypher_query", `{"query":"RETURN 1"}`),
		TextResponse("done"),
	)
	ctx := context.Background()
	req := llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}}

	first, err := p.CompleteWithTools(ctx, req, []llm.ToolDef{cypherTool()})
	require.NoError(t, err)
	assert.Equal(t, llm.FinishReasonToolCalls, first.FinishReason)
	require.Len(t, first.Message.ToolCalls, 1)
	assert.NotEmpty(t, first.Message.ToolCalls[0].ID)
	assert.Equal(t, "run_cypher_query", first.Message.ToolCalls[0].Name)

	second, err := p.Complete(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "done", second.Message.Content)
	assert.Equal(t, llm.FinishReasonStop, second.FinishReason)

	_, err = p.Complete(ctx, req)
	require.Error(t, err)
	assert.Equal(t, llm.ErrCompletionFailed, types.CodeOf(err))

	calls := p.GetCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "CompleteWithTools", calls[0].Method)
	assert.Len(t, calls[0].Tools, 1)
	assert.Equal(t, "Complete", calls[1].Method)
	assert.Nil(t, calls[1].Tools)
	assert.Equal(t, 0, p.Remaining())
}

func TestMockProvider_RecordsMessageSnapshot(t *testing.T) {
	p := NewMockProvider(TextResponse("ok"))
	messages := []llm.Message{llm.NewUserMessage("q")}

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Messages: messages})
	require.NoError(t, err)

	messages[0].Content = "changed"
	assert.Equal(t, "q", p.GetCalls()[0].Request.Messages[0].Content)
}

func TestMockProvider_RepeatAndReset(t *testing.T) {
	p := NewMockProvider(TextResponse("again")).Repeat()
	req := llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}}

	for i := 0; i < 3; i++ {
		resp, err := p.Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "again", resp.Message.Content)
	}

	p.Reset()
	assert.Empty(t, p.GetCalls())
	assert.Equal(t, 1, p.Remaining())
}

func TestMockProvider_ScriptedError(t *testing.T) {
	boom := errors.New("transport down")
	p := NewMockProvider(ErrorResponse(boom))

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}})
	assert.ErrorIs(t, err, boom)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	p := NewMockProvider(TextResponse("unused"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}})
	require.Error(t, err)
	assert.Equal(t, llm.ErrContextCanceled, types.CodeOf(err))
	assert.Equal(t, 1, p.Remaining())
}

func TestMockProvider_Health(t *testing.T) {
	p := NewMockProvider()
	assert.True(t, p.Health(context.Background()).IsHealthy())

	p.SetHealthStatus(types.Unhealthy("down"))
	assert.False(t, p.Health(context.Background()).IsHealthy())
}
