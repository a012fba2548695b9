package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"RECTBOARD_TITLE", "RECTBOARD_WIDTH", "RECTBOARD_HEIGHT",
		"RECTBOARD_INSPECT", "RECTBOARD_INSPECT_PORT", "RECTBOARD_ADVERTISE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "Rectangles", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.False(t, cfg.InspectEnabled)
	assert.Equal(t, 8888, cfg.InspectPort)
	assert.True(t, cfg.Advertise)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RECTBOARD_TITLE", "Shapes")
	t.Setenv("RECTBOARD_WIDTH", "640")
	t.Setenv("RECTBOARD_HEIGHT", "not-a-number")
	t.Setenv("RECTBOARD_INSPECT", "true")
	t.Setenv("RECTBOARD_INSPECT_PORT", "9000")
	t.Setenv("RECTBOARD_ADVERTISE", "0")

	cfg := Load()
	assert.Equal(t, "Shapes", cfg.Title)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.True(t, cfg.InspectEnabled)
	assert.Equal(t, 9000, cfg.InspectPort)
	assert.False(t, cfg.Advertise)
}
