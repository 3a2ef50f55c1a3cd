package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "UPLOAD_DIR", "JWT_SECRET", "IS_PROD", "DB_USER", "DB_HOST"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "./public/uploads", cfg.UploadDir)
	assert.False(t, cfg.IsProd)
	// Development falls back to a built-in signing secret
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadConfig_Explicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "configured-secret")
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "configured-secret", cfg.JWTSecret)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	assert.True(t, cfg.IsProd)
}
