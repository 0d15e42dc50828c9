package response

// ErrorResponse 프레임워크 수준 오류(404, 405, 429, 500) 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 404, 429, 500)
	ResultCode int `json:"result_code" example:"404"`

	// Message 에러 메시지
	Message string `json:"message" example:"요청한 리소스를 찾을 수 없습니다"`
}
