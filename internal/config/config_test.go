package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default Port '8000', got '%s'", cfg.Port)
	}

	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("Expected default OllamaURL 'http://localhost:11434', got '%s'", cfg.OllamaURL)
	}

	if cfg.OllamaModel != "llama3" {
		t.Errorf("Expected default OllamaModel 'llama3', got '%s'", cfg.OllamaModel)
	}

	if cfg.TTSVoice != "en-US-AvaMultilingualNeural" {
		t.Errorf("Expected default TTSVoice 'en-US-AvaMultilingualNeural', got '%s'", cfg.TTSVoice)
	}

	if cfg.TTSRate != "+10%" {
		t.Errorf("Expected default TTSRate '+10%%', got '%s'", cfg.TTSRate)
	}

	if cfg.TTSPitch != "+0Hz" {
		t.Errorf("Expected default TTSPitch '+0Hz', got '%s'", cfg.TTSPitch)
	}

	if cfg.TurnQueueSize != 16 {
		t.Errorf("Expected default TurnQueueSize 16, got %d", cfg.TurnQueueSize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("OLLAMA_MODEL", "qwen2.5")
	os.Setenv("AVATAR_NAME", "Yuki")
	defer os.Unsetenv("OLLAMA_MODEL")
	defer os.Unsetenv("AVATAR_NAME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OllamaModel != "qwen2.5" {
		t.Errorf("Expected OllamaModel 'qwen2.5', got '%s'", cfg.OllamaModel)
	}

	if cfg.AvatarName != "Yuki" {
		t.Errorf("Expected AvatarName 'Yuki', got '%s'", cfg.AvatarName)
	}
}

func TestLoad_InvalidQueueSize(t *testing.T) {
	os.Setenv("TURN_QUEUE_SIZE", "0")
	defer os.Unsetenv("TURN_QUEUE_SIZE")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for TURN_QUEUE_SIZE of 0")
	}
}

func TestLoad_EmptyModel(t *testing.T) {
	os.Setenv("OLLAMA_MODEL", "")
	defer os.Unsetenv("OLLAMA_MODEL")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for empty OLLAMA_MODEL")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_KEY", "test-value")
	defer os.Unsetenv("TEST_KEY")

	if value := GetEnv("TEST_KEY", "default"); value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	if value := GetEnv("NON_EXISTENT_KEY", "default"); value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}
