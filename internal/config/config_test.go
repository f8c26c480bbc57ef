package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DEBUG", "ALLOWED_ORIGINS", "BOT_DELAY_MS", "BOT_W_OPEN_ROOM", "MIRROR_QUEUE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 300*time.Millisecond, cfg.BotDelay)
	assert.Equal(t, 64, cfg.MirrorQueue)
	assert.Equal(t, DefaultBotWeights(), cfg.BotWeights)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("BOT_DELAY_MS", "0")
	t.Setenv("BOT_W_OPEN_ROOM", "7")
	t.Setenv("MIRROR_QUEUE", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.BotDelay)
	assert.Equal(t, 7, cfg.BotWeights.OpenRoom)
	assert.Equal(t, 64, cfg.MirrorQueue, "unparsable values fall back to the default")
}
