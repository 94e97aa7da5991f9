package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/vrmchat/avatar-gateway/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.Config{
		TTSURL:              url,
		TTSVoice:            "en-US-AvaMultilingualNeural",
		TTSRate:             "+10%",
		TTSPitch:            "+0Hz",
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1,
	})
}

func TestClient_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Voice != "en-US-AvaMultilingualNeural" {
			t.Errorf("Expected configured voice, got %q", req.Voice)
		}
		if req.Rate != "+10%" || req.Pitch != "+0Hz" {
			t.Errorf("Expected configured rate/pitch, got %q/%q", req.Rate, req.Pitch)
		}
		w.Write([]byte("fake-audio-bytes"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	audio, err := client.Synthesize(context.Background(), "Hello!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "fake-audio-bytes" {
		t.Errorf("Expected audio bytes, got %q", audio)
	}
}

func TestClient_SynthesizeRetriesTransientFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	audio, err := client.Synthesize(context.Background(), "Hello!")
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if string(audio) != "audio" {
		t.Errorf("Expected audio from second attempt, got %q", audio)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

type fakeSynth struct {
	audio    []byte
	err      error
	invoked  int
	lastText string
	delay    time.Duration
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.invoked++
	f.lastText = text
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.audio, f.err
}

func TestSpeaker_Speak(t *testing.T) {
	synth := &fakeSynth{audio: []byte("pcm")}
	speaker := NewSpeaker(synth, zerolog.Nop())

	got := speaker.Speak(context.Background(), "I'm *so* happy~ 🎉")
	want := base64.StdEncoding.EncodeToString([]byte("pcm"))
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if synth.lastText != "I'm happy" {
		t.Errorf("Expected sanitized text to reach the backend, got %q", synth.lastText)
	}
}

func TestSpeaker_EmptyAfterSanitizationSkipsBackend(t *testing.T) {
	synth := &fakeSynth{audio: []byte("pcm")}
	speaker := NewSpeaker(synth, zerolog.Nop())

	if got := speaker.Speak(context.Background(), "*stretches* 🎀"); got != "" {
		t.Errorf("Expected empty audio for unspeakable text, got %q", got)
	}
	if synth.invoked != 0 {
		t.Errorf("Expected backend not to be invoked, got %d calls", synth.invoked)
	}
}

func TestSpeaker_FailureDowngradesToEmpty(t *testing.T) {
	synth := &fakeSynth{err: errors.New("voice server exploded")}
	speaker := NewSpeaker(synth, zerolog.Nop())

	if got := speaker.Speak(context.Background(), "Hello!"); got != "" {
		t.Errorf("Expected empty audio on failure, got %q", got)
	}
}
