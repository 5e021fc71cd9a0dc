package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxlume/tts-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "5002", cfg.Port)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "http", cfg.Engine)
	assert.Equal(t, "p225", cfg.DefaultSpeaker)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, 15, cfg.RateLimitPerMinute)
	assert.Equal(t, 120, cfg.EngineTimeoutSeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENGINE", "gemini")
	t.Setenv("WORKERS", "8")
	t.Setenv("QUEUE_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "gemini", cfg.Engine)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 64, cfg.QueueSize, "malformed numbers fall back to the default")
}
