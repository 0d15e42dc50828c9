// Package log logrus 기반의 애플리케이션 로깅 시스템을 제공합니다.
//
// 모든 로그는 component 필드를 포함하는 것을 원칙으로 하며,
// WithComponent / WithComponentAndFields 헬퍼를 통해 기록합니다.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 logrus Logger를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetOutput 전역 Logger의 출력 대상을 변경합니다. (주로 테스트에서 로그를 캡처할 때 사용)
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetFormatter 전역 Logger의 포맷터를 변경합니다.
func SetFormatter(f Formatter) {
	logrus.SetFormatter(f)
}

// SetLevel 전역 Logger의 로그 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// WithFields 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}

// MaskSensitiveData 토큰, 키, 접속 URL 등의 민감 정보를 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 값은 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}
