// Package history keeps the widget's local conversation. Each turn carries a
// used flag deciding whether it is sent back to the relay as context.
package history

import (
	"sync"

	"cleaning-intake/internal/llm"
)

type entry struct {
	msg  llm.Message
	used bool
}

// Conversation is safe for concurrent use. All returned slices are copies.
type Conversation struct {
	mu       sync.RWMutex
	entries  []entry
	maxTurns int
}

// NewConversation returns an empty conversation. maxTurns caps the number of
// turns returned by Context; zero means no cap.
func NewConversation(maxTurns int) *Conversation {
	if maxTurns < 0 {
		maxTurns = 0
	}
	return &Conversation{maxTurns: maxTurns}
}

func (c *Conversation) AppendUser(content string) {
	c.AppendWithUsed(llm.RoleUser, content, true)
}

func (c *Conversation) AppendAssistant(content string) {
	c.AppendWithUsed(llm.RoleAssistant, content, true)
}

func (c *Conversation) AppendWithUsed(role, content string, used bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry{msg: llm.Message{Role: role, Content: content}, used: used})
}

// Context returns the turns that are sent to the relay, oldest first.
func (c *Conversation) Context() []llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []llm.Message
	for _, e := range c.entries {
		if e.used {
			out = append(out, e.msg)
		}
	}
	if c.maxTurns > 0 && len(out) > c.maxTurns {
		out = out[len(out)-c.maxTurns:]
	}
	if out == nil {
		out = []llm.Message{}
	}
	return out
}

// All returns every turn, including those kept out of context.
func (c *Conversation) All() []llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]llm.Message, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.msg)
	}
	return out
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
