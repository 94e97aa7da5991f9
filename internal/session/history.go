package session

import (
	"sync"

	"github.com/vrmchat/avatar-gateway/internal/llm"
)

// History is the conversation record for one session. The first entry is
// always the system persona; entries are immutable once appended. It is
// owned by its session and lives exactly as long as the connection.
type History struct {
	mu      sync.Mutex
	entries []llm.Message
}

// NewHistory creates a history seeded with the system persona entry
func NewHistory(persona string) *History {
	return &History{
		entries: []llm.Message{{Role: llm.RoleSystem, Content: persona}},
	}
}

// Append adds one entry to the history
func (h *History) Append(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, llm.Message{Role: role, Content: content})
}

// Reset drops everything but the system persona entry
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:1]
}

// Messages returns a copy of the history for a generation call
func (h *History) Messages() []llm.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]llm.Message, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries including the persona
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
