package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
)

// ====================================================================================================
// Test Helpers
// ====================================================================================================

// clearEnv 설정 관련 환경변수를 모두 제거하고, 테스트 종료 시 원래 값으로 복원합니다.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ====================================================================================================
// Load Tests
// ====================================================================================================

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *cfg)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.SecretKey)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30, cfg.AccessTokenExpireMinutes)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db/app")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "postgres://user:pass@db/app", cfg.DatabaseURL)
	assert.Equal(t, 60, cfg.AccessTokenExpireMinutes)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "127.0.0.1:9000", cfg.Address())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"실패: 숫자가 아닌 PORT", "PORT", "notanumber"},
		{"실패: 범위를 벗어난 PORT", "PORT", "70000"},
		{"실패: 0 PORT", "PORT", "0"},
		{"실패: 알 수 없는 LOG_LEVEL", "LOG_LEVEL", "verbose"},
		{"실패: 숫자가 아닌 토큰 만료 시간", "ACCESS_TOKEN_EXPIRE_MINUTES", "thirty"},
		{"실패: 음수 토큰 만료 시간", "ACCESS_TOKEN_EXPIRE_MINUTES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadFromEnv()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Run("성공: 파일 값 적용 및 환경변수 우선", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "config.json", `{"port": 8100, "environment": "staging", "log_level": "warning"}`)
		t.Setenv("PORT", "8200")

		cfg, err := Load(LoadOptions{File: path})
		require.NoError(t, err)

		assert.Equal(t, 8200, cfg.Port)
		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, "warning", cfg.LogLevel)
		assert.Equal(t, "0.0.0.0", cfg.Host)
	})

	t.Run("실패: 알 수 없는 키", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "config.json", `{"unknown_key": true}`)

		_, err := Load(LoadOptions{File: path})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("실패: 존재하지 않는 파일", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "missing.json")})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("실패: 잘못된 JSON", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "config.json", `{"port": `)

		_, err := Load(LoadOptions{File: path})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}

func TestLoad_EnvFile(t *testing.T) {
	t.Run("성공: dotenv 값 적용", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, ".env", "PORT=8300\nSECRET_KEY=super-secret-value\n")

		cfg, err := Load(LoadOptions{EnvFile: path})
		require.NoError(t, err)

		assert.Equal(t, 8300, cfg.Port)
		assert.Equal(t, "super-secret-value", cfg.SecretKey)
	})

	t.Run("성공: 실제 환경변수를 덮어쓰지 않음", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "8400")
		path := writeFile(t, ".env", "PORT=8300\n")

		cfg, err := Load(LoadOptions{EnvFile: path})
		require.NoError(t, err)

		assert.Equal(t, 8400, cfg.Port)
	})

	t.Run("성공: 존재하지 않는 dotenv 파일은 무시", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), ".env")})
		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.Port)
	})
}

// ====================================================================================================
// AppConfig Method Tests
// ====================================================================================================

func TestAppConfig_IsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		environment string
		want        bool
	}{
		{"development", true},
		{"Development", true},
		{" development ", true},
		{"production", false},
		{"", false},
	}

	for _, tt := range tests {
		cfg := AppConfig{Environment: tt.environment}
		assert.Equal(t, tt.want, cfg.IsDevelopment(), "environment=%q", tt.environment)
	}
}

func TestAppConfig_Address(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())

	cfg.Host = "::1"
	assert.Equal(t, "[::1]:8000", cfg.Address())
}

func TestAppConfig_PlaceholderSettings(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Empty(t, cfg.PlaceholderSettings())

	cfg.SecretKey = "super-secret-value"
	cfg.RedisURL = "redis://cache:6379/0"

	fields := cfg.PlaceholderSettings()
	require.Len(t, fields, 2)
	assert.NotContains(t, fields["secret_key"], "super-secret-value")
	assert.NotContains(t, fields["redis_url"], "cache:6379")
	assert.NotContains(t, fields, "database_url")
}
