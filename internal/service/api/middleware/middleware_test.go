package middleware

import (
	"bytes"
	"os"
	"testing"

	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// captureLog 전역 로거 출력을 버퍼로 돌리고, 테스트 종료 시 원래 상태로 복원합니다.
//
// 주의: 전역 로거 상태를 변경하므로 이를 사용하는 테스트는 t.Parallel()을 사용할 수 없습니다.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	prevFormatter, prevLevel := logger.Formatter, logger.GetLevel()

	buf := new(bytes.Buffer)
	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		applog.SetOutput(os.Stderr)
		applog.SetFormatter(prevFormatter)
		applog.SetLevel(prevLevel)
	})

	return buf
}
