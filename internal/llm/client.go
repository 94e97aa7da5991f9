package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vrmchat/avatar-gateway/internal/config"
	"github.com/vrmchat/avatar-gateway/internal/observability"
	"github.com/vrmchat/avatar-gateway/internal/resilience"
)

// Conversation roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a conversation history
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Client talks to an Ollama-compatible chat API
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// NewClient creates a generation client from config
func NewClient(cfg *config.Config) *Client {
	breaker := resilience.NewCircuitBreaker("ollama",
		cfg.BreakerMaxFailures,
		time.Duration(cfg.BreakerResetTimeout)*time.Second)
	breaker.OnStateChange = func(name string, state resilience.CircuitState) {
		observability.UpdateCircuitBreakerState(name, int(state))
	}

	return &Client{
		baseURL:    cfg.OllamaURL,
		model:      cfg.OllamaModel,
		httpClient: &http.Client{},
		breaker:    breaker,
	}
}

// Available reports whether the generation backend can serve a turn. An open
// circuit breaker short-circuits without touching the network; otherwise the
// backend is probed and the result recorded.
func (c *Client) Available(ctx context.Context) error {
	return c.breaker.Call(func() error {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/api/tags", nil)
		if err != nil {
			return fmt.Errorf("failed to create probe request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("generation backend unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("generation backend returned status %d", resp.StatusCode)
		}
		return nil
	})
}

// ChatStream sends the conversation to the model and invokes fn for every
// streamed token, in order, on the calling goroutine. It returns after the
// stream completes, fn returns an error, or the context is cancelled.
func (c *Client) ChatStream(ctx context.Context, messages []Message, fn func(token string) error) error {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordResult(false)
		return fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.breaker.RecordResult(false)
		return fmt.Errorf("generation backend returned status %d: %s", resp.StatusCode, string(body))
	}

	// The body is a stream of newline-delimited JSON rows, one per token
	decoder := json.NewDecoder(resp.Body)
	for decoder.More() {
		var row chatResponse
		if err := decoder.Decode(&row); err != nil {
			c.breaker.RecordResult(false)
			return fmt.Errorf("failed to decode stream row: %w", err)
		}

		if row.Message.Content != "" {
			if err := fn(row.Message.Content); err != nil {
				return err
			}
		}

		if row.Done {
			break
		}
	}

	c.breaker.RecordResult(true)
	return nil
}
