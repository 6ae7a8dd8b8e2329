package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("GEMINI_API_KEY가 없으면 기동 실패", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("기본값이 채워진다", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GEMINI_MODEL", "")
		t.Setenv("PORT", "")
		t.Setenv("MAX_UPLOAD_MB", "")
		t.Setenv("REDIS_HOST", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "gemini-2.5-flash-image-preview", cfg.GeminiModel)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, int64(32), cfg.MaxUploadMB)
		assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes())
		assert.Empty(t, cfg.RedisHost)
	})

	t.Run("환경변수가 기본값을 덮어쓴다", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GEMINI_MODEL", "gemini-3.0-image")
		t.Setenv("MAX_UPLOAD_MB", "8")
		t.Setenv("REDIS_HOST", "redis.internal")
		t.Setenv("REDIS_PORT", "6380")
		t.Setenv("REDIS_USE_TLS", "false")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "gemini-3.0-image", cfg.GeminiModel)
		assert.Equal(t, int64(8), cfg.MaxUploadMB)
		assert.Equal(t, "redis.internal:6380", cfg.GetRedisAddr())
		assert.False(t, cfg.RedisUseTLS)
	})
}
