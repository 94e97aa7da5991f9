package session

import (
	"testing"

	"github.com/vrmchat/avatar-gateway/internal/llm"
)

func TestHistory_PersonaFirst(t *testing.T) {
	h := NewHistory("persona text")

	msgs := h.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "persona text" {
		t.Errorf("Expected system persona entry, got %+v", msgs[0])
	}
}

func TestHistory_AppendAndReset(t *testing.T) {
	h := NewHistory("persona")
	h.Append(llm.RoleUser, "hi")
	h.Append(llm.RoleAssistant, "hello!")

	if h.Len() != 3 {
		t.Errorf("Expected 3 entries, got %d", h.Len())
	}

	h.Reset()
	msgs := h.Messages()
	if len(msgs) != 1 || msgs[0].Role != llm.RoleSystem {
		t.Errorf("Expected reset to keep only the persona entry, got %+v", msgs)
	}
}

func TestHistory_MessagesReturnsCopy(t *testing.T) {
	h := NewHistory("persona")
	msgs := h.Messages()
	msgs[0].Content = "mutated"

	if h.Messages()[0].Content != "persona" {
		t.Error("Expected Messages to return a copy")
	}
}

func TestParseInbound(t *testing.T) {
	msg := parseInbound([]byte(`{"type":"user_message","text":"hi there"}`))
	if msg.Type != TypeUserMessage || msg.Text != "hi there" {
		t.Errorf("Expected user_message, got %+v", msg)
	}

	msg = parseInbound([]byte(`{"type":"clear"}`))
	if msg.Type != TypeClear {
		t.Errorf("Expected clear, got %+v", msg)
	}

	// Non-JSON payloads are coerced to a user message with the raw text
	msg = parseInbound([]byte("just plain text"))
	if msg.Type != TypeUserMessage || msg.Text != "just plain text" {
		t.Errorf("Expected coerced user_message, got %+v", msg)
	}

	// JSON without a type defaults to user_message
	msg = parseInbound([]byte(`{"text":"hello"}`))
	if msg.Type != TypeUserMessage || msg.Text != "hello" {
		t.Errorf("Expected defaulted user_message, got %+v", msg)
	}
}
