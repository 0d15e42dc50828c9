package constants

// 상태 엔드포인트 응답에 사용되는 상수입니다.
const (
	// StatusHealthy 상태 응답의 status 필드 값
	StatusHealthy = "healthy"

	// MsgRootRunning GET / 응답 메시지
	MsgRootRunning = "yoohoo.guru MCP Server is running"

	// MsgHealthOperational GET /health 응답 메시지
	MsgHealthOperational = "Service is operational"
)
