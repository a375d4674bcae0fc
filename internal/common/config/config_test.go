package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OUTPUT_DIR", "DEFAULT_DPI", "CORS_ORIGINS", "READ_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "data/renders", cfg.OutputDir)
	assert.Equal(t, 100.0, cfg.DefaultDPI)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.ReadTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEFAULT_DPI", "300")
	t.Setenv("READ_TIMEOUT", "abc")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 300.0, cfg.DefaultDPI)
	assert.Equal(t, 10, cfg.ReadTimeout, "unparsable values fall back to the default")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestNonPositiveDPIFallsBack(t *testing.T) {
	t.Setenv("DEFAULT_DPI", "-5")
	assert.Equal(t, 100.0, Load().DefaultDPI)
}
