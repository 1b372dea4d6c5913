package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/llm"
)

func TestConversation_AppendOnly(t *testing.T) {
	conv := NewConversation("system prompt")
	require.Equal(t, 1, conv.Len())
	assert.Equal(t, "system prompt", conv.System())

	conv.Append(llm.NewUserMessage("q1"), llm.NewAssistantMessage("a1"))
	assert.Equal(t, 3, conv.Len())
	assert.Equal(t, "a1", conv.Last().Content)

	msgs := conv.Messages()
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, llm.RoleAssistant, msgs[2].Role)
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	conv := NewConversation("system")
	conv.Append(llm.Message{
		Role:      llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "run_cypher_query", Arguments: `{"query":"RETURN 1"}`}},
	})

	msgs := conv.Messages()
	msgs[0].Content = "changed"
	msgs[1].ToolCalls[0].Arguments = "changed"

	again := conv.Messages()
	assert.Equal(t, "system", again[0].Content)
	assert.Equal(t, `{"query":"RETURN 1"}`, again[1].ToolCalls[0].Arguments)
}
