package log

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// PanicLevel 로그를 기록한 후 panic()을 호출합니다.
	PanicLevel Level = logrus.PanicLevel

	// FatalLevel 로그를 기록한 후 os.Exit(1)을 호출합니다.
	// 환경설정 로드 실패처럼 프로세스가 더 이상 진행할 수 없을 때 사용합니다.
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 프로세스를 종료하지는 않지만 관리자의 개입이 필요한 상태입니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 당장 에러는 아니지만 주의가 필요한 상태입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 시스템의 정상적인 작동 흐름을 기록합니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 개발 및 테스트 단계의 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel Debug 레벨보다 더 상세한 데이터 흐름을 추적합니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Logger logrus.Logger의 별칭입니다.
type Logger = logrus.Logger

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter

// JSONFormatter logrus.JSONFormatter의 별칭입니다.
type JSONFormatter = logrus.JSONFormatter

// TextFormatter logrus.TextFormatter의 별칭입니다.
type TextFormatter = logrus.TextFormatter

// ParseLevel 로그 레벨 문자열을 Level로 변환합니다.
//
// logrus가 인식하는 이름(panic, fatal, error, warn, warning, info, debug, trace)에 더해
// "critical"을 FatalLevel로 인식합니다.
func ParseLevel(s string) (Level, error) {
	if strings.EqualFold(strings.TrimSpace(s), "critical") {
		return FatalLevel, nil
	}
	return logrus.ParseLevel(strings.TrimSpace(s))
}
