package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobalState Setup의 sync.Once와 logrus 전역 상태를 초기화합니다.
func resetGlobalState(t *testing.T) {
	t.Helper()

	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logger := logrus.StandardLogger()
	prevOut, prevFormatter, prevLevel := logger.Out, logger.Formatter, logger.Level
	logger.ReplaceHooks(make(logrus.LevelHooks))

	t.Cleanup(func() {
		logger.ReplaceHooks(make(logrus.LevelHooks))
		logger.SetOutput(prevOut)
		logger.SetFormatter(prevFormatter)
		logger.SetLevel(prevLevel)
		logger.SetReportCaller(false)
	})
}

func TestSetup_Validation(t *testing.T) {
	existingFile := filepath.Join(t.TempDir(), "existing_file")
	require.NoError(t, os.WriteFile(existingFile, []byte("x"), 0644))

	tests := []struct {
		name        string
		opts        Options
		expectError string
	}{
		{name: "Name 누락", opts: Options{Dir: t.TempDir()}, expectError: "애플리케이션 식별자(Name)가 설정되지 않았습니다"},
		{name: "Dir 위치에 파일이 존재", opts: Options{Name: "app", Dir: existingFile}, expectError: "이미 파일로 존재합니다"},
		{name: "음수 MaxAge", opts: Options{Name: "app", Dir: t.TempDir(), MaxAge: -1}, expectError: "MaxAge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobalState(t)

			_, err := Setup(tt.opts)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestSetup_CreatesLogFiles(t *testing.T) {
	resetGlobalState(t)
	dir := t.TempDir()

	c, err := Setup(Options{
		Name:              "mcp-server-test",
		Dir:               dir,
		Level:             DebugLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	WithComponent("test").Info("info message")
	WithComponent("test").Error("error message")
	WithComponent("test").Debug("debug message")

	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "mcp-server-test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "info message")
	assert.Contains(t, string(mainLog), "error message")
	assert.NotContains(t, string(mainLog), "debug message")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "mcp-server-test.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "error message")
	assert.NotContains(t, string(criticalLog), "info message")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "mcp-server-test.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "debug message")
}

func TestSetup_OnlyOnce(t *testing.T) {
	resetGlobalState(t)
	dir := t.TempDir()

	c1, err1 := Setup(Options{Name: "first", Dir: dir})
	c2, err2 := Setup(Options{Name: "second", Dir: dir})

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Same(t, c1, c2, "두 번째 호출은 최초 초기화 결과를 그대로 반환해야 합니다")
	assert.Equal(t, InfoLevel, logrus.GetLevel(), "레벨 미지정 시 Info가 기본값이어야 합니다")

	require.NoError(t, c1.Close())
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	prod := NewProductionOptions("mcp-server", InfoLevel)
	assert.Equal(t, 30, prod.MaxAge)
	assert.True(t, prod.EnableCriticalLog)
	assert.True(t, prod.EnableVerboseLog)
	assert.False(t, prod.EnableConsoleLog)

	dev := NewDevelopmentOptions("mcp-server", DebugLevel)
	assert.Equal(t, 1, dev.MaxAge)
	assert.True(t, dev.EnableConsoleLog)
	assert.Equal(t, DebugLevel, dev.Level)
	assert.NoError(t, dev.Validate())
}
