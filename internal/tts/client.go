package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/vrmchat/avatar-gateway/internal/config"
	"github.com/vrmchat/avatar-gateway/internal/observability"
	"github.com/vrmchat/avatar-gateway/internal/resilience"
)

// Synthesizer converts sanitized text to audio bytes
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Client implements Synthesizer against an edge-tts compatible HTTP service
type Client struct {
	apiURL     string
	voice      string
	rate       string
	pitch      string
	httpClient *http.Client
	retry      *resilience.RetryConfig
}

type synthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Rate  string `json:"rate,omitempty"`
	Pitch string `json:"pitch,omitempty"`
}

// NewClient creates a synthesis client with the fixed voice profile from config
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiURL:     cfg.TTSURL,
		voice:      cfg.TTSVoice,
		rate:       cfg.TTSRate,
		pitch:      cfg.TTSPitch,
		httpClient: &http.Client{},
		retry: &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:        5 * time.Second,
			BackoffMultiplier: 2.0,
		},
	}
}

// Synthesize sends text to the synthesis service and returns the audio bytes.
// Transient network failures are retried with backoff.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var audio []byte

	err := resilience.Retry(func() error {
		data, err := c.synthesizeOnce(ctx, text)
		if err != nil {
			return err
		}
		audio = data
		return nil
	}, c.retry, resilience.IsRetryableNetworkError)

	if err != nil {
		return nil, err
	}
	return audio, nil
}

func (c *Client) synthesizeOnce(ctx context.Context, text string) ([]byte, error) {
	reqBody := synthesisRequest{
		Text:  text,
		Voice: c.voice,
		Rate:  c.rate,
		Pitch: c.pitch,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts service returned status %d", resp.StatusCode)
	}

	// The service streams raw audio; concatenate everything it returns
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis response: %w", err)
	}
	return audio, nil
}

// Speaker is the per-sentence synthesis adapter used by the turn pipeline.
// Failures never propagate: a sentence whose audio cannot be produced is
// still delivered, just silent.
type Speaker struct {
	synth  Synthesizer
	logger zerolog.Logger
}

// NewSpeaker wraps a Synthesizer behind sanitization and failure downgrade
func NewSpeaker(synth Synthesizer, logger zerolog.Logger) *Speaker {
	return &Speaker{synth: synth, logger: logger}
}

// Speak sanitizes text, synthesizes it and returns base64-encoded audio.
// An empty string means no audio: either nothing speakable remained after
// sanitization, or synthesis failed.
func (s *Speaker) Speak(ctx context.Context, text string) string {
	clean := SanitizeForSpeech(text)
	if clean == "" {
		return ""
	}

	start := time.Now()
	audio, err := s.synth.Synthesize(ctx, clean)
	if err != nil {
		s.logger.Warn().Err(err).Str("text", clean).Msg("Speech synthesis failed, delivering silent sentence")
		observability.RecordSynthesis(false, time.Since(start))
		observability.RecordError("synthesis_failure", "tts")
		return ""
	}
	observability.RecordSynthesis(true, time.Since(start))

	return base64.StdEncoding.EncodeToString(audio)
}
