package log

// callerPathPrefix 호출자 경로 표시 시 생략할 모듈 경로 접두사입니다.
const callerPathPrefix = "github.com/yoohooguru"

// NewProductionOptions 운영(Production) 환경에 최적화된 로그 설정을 반환합니다.
func NewProductionOptions(appName string, level Level) Options {
	return Options{
		Name:  appName,
		Level: level,

		MaxAge:     30,  // 30일 보관
		MaxSizeMB:  100, // 100MB 단위 로테이션
		MaxBackups: 20,  // 최대 20개 백업 유지

		EnableCriticalLog: true,  // 장애 대응을 위한 중요 로그 격리
		EnableVerboseLog:  true,  // 문제 추적을 위한 상세 로그 분리
		EnableConsoleLog:  false, // 파일 중심 로깅

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentOptions 개발(Development) 환경에 최적화된 로그 설정을 반환합니다.
func NewDevelopmentOptions(appName string, level Level) Options {
	return Options{
		Name:  appName,
		Level: level,

		MaxAge:     1,  // 가볍게 1일만 보관
		MaxSizeMB:  50, // 50MB 단위 로테이션
		MaxBackups: 5,  // 최대 5개 백업 유지

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true, // 터미널 출력 활성화

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}
