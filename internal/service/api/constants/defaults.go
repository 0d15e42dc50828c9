package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultReadTimeout 요청 본문까지 읽는 최대 시간
	DefaultReadTimeout = 15 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 시간
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 최대 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 진행 중인 요청을 기다리는 최대 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 순간 최대 허용 요청 수
	DefaultRateLimitBurst = 40

	// DefaultRateLimitExpiresIn 요청이 없는 IP의 Token Bucket 을 정리하기까지의 시간
	DefaultRateLimitExpiresIn = 3 * time.Minute
)
