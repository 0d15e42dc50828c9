package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (파일 I/O 등)
	System

	// InvalidInput 잘못된 입력값 (환경변수 형식 오류, 유효성 검사 실패)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ParsingFailed 데이터 파싱 또는 형식 변환 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 대상 서비스에 연결할 수 없음
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:       "Unknown",
	Internal:      "Internal",
	System:        "System",
	InvalidInput:  "InvalidInput",
	NotFound:      "NotFound",
	ParsingFailed: "ParsingFailed",
	Timeout:       "Timeout",
	Unavailable:   "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
