package session

import "encoding/json"

// Inbound message types
const (
	TypeUserMessage = "user_message"
	TypeClear       = "clear"
)

// InboundMessage is a client-to-server message
type InboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// DialogueCommand is the outbound unit for one sentence of a turn. It is
// constructed once, sent exactly once, and never retracted.
type DialogueCommand struct {
	Type      string  `json:"type"` // always "dialogue"
	Text      string  `json:"text"`
	Emotion   string  `json:"emotion"`
	Gesture   string  `json:"gesture"`
	LipSync   bool    `json:"lipSync"`
	AudioB64  string  `json:"audioB64"`
	Streaming bool    `json:"streaming"`
	First     bool    `json:"first"`
	Action    *string `json:"action"` // null when the sentence has no action
}

// ClearedMessage acknowledges a history reset
type ClearedMessage struct {
	Type string `json:"type"` // always "cleared"
}

// parseInbound decodes a client payload. Non-JSON payloads are coerced to a
// best-effort user message carrying the raw text; nothing is rejected here.
func parseInbound(raw []byte) InboundMessage {
	var msg InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return InboundMessage{Type: TypeUserMessage, Text: string(raw)}
	}
	if msg.Type == "" {
		msg.Type = TypeUserMessage
	}
	return msg
}
