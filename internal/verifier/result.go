package verifier

import "encoding/json"

// Endpoint 점검 대상 경로와 보고서에 표시할 설명입니다.
type Endpoint struct {
	Path        string
	Description string
}

// DefaultEndpoints 사람이 읽는 보고서 모드에서 점검하는 엔드포인트 목록입니다.
var DefaultEndpoints = []Endpoint{
	{Path: "/", Description: "Root endpoint"},
	{Path: "/health", Description: "Health check"},
	{Path: "/docs", Description: "API Documentation"},
	{Path: "/openapi.json", Description: "OpenAPI Schema"},
}

// expectedMessages 상태 엔드포인트별로 기대하는 message 값입니다. 불일치는 경고로만 보고합니다.
var expectedMessages = map[string]string{
	"/":       "yoohoo.guru MCP Server is running",
	"/health": "Service is operational",
}

// Result 엔드포인트 한 곳의 점검 결과입니다.
//
// 네트워크 오류로 응답을 받지 못한 경우 StatusCode 와 ResponseTime 은 비어 있고 Error 가 채워집니다.
type Result struct {
	Endpoint     string          `json:"endpoint"`
	StatusCode   int             `json:"status_code,omitempty"`
	Success      bool            `json:"success"`
	ResponseTime float64         `json:"response_time,omitempty"`
	ContentType  string          `json:"content_type,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	Title        string          `json:"title,omitempty"`
	Error        string          `json:"error,omitempty"`
}
