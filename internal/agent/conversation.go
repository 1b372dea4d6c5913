package agent

import (
	"sync"

	"github.com/zero-day-ai/graphchat/internal/llm"
)

// Conversation is the append-only message history of one session. The
// system message is at index 0 and is never replaced.
type Conversation struct {
	mu       sync.RWMutex
	messages []llm.Message
}

// NewConversation starts a history with system as its first message.
func NewConversation(system string) *Conversation {
	return &Conversation{
		messages: []llm.Message{llm.NewSystemMessage(system)},
	}
}

// Append adds messages at the end of the history.
func (c *Conversation) Append(msgs ...llm.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		c.messages = append(c.messages, cloneMessage(m))
	}
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]llm.Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = cloneMessage(m)
	}
	return out
}

// Len returns the number of messages, system message included.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// System returns the system message content.
func (c *Conversation) System() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages[0].Content
}

// Last returns the most recent message.
func (c *Conversation) Last() llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMessage(c.messages[len(c.messages)-1])
}

func cloneMessage(m llm.Message) llm.Message {
	if m.ToolCalls != nil {
		m.ToolCalls = append([]llm.ToolCall(nil), m.ToolCalls...)
	}
	return m
}
