package status

import "time"

// StatusResponse 루트(/)와 헬스체크(/health) 엔드포인트가 공통으로 사용하는 상태 응답
//
// 요청마다 새로 생성되며 저장되지 않습니다.
type StatusResponse struct {
	// 서비스 상태 (항상 healthy)
	Status string `json:"status" example:"healthy"`
	// 엔드포인트별 고정 메시지
	Message string `json:"message" example:"Service is operational"`
	// 응답 생성 시각 (RFC 3339, UTC 오프셋 포함)
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00.000000Z"`
	// 서비스 버전
	Version string `json:"version" example:"1.0.0"`
}
