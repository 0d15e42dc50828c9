package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/yoohooguru/mcp-server/internal/service/api/handler/docs"
	"github.com/yoohooguru/mcp-server/internal/service/api/handler/status"
)

// RegisterRoutes API 서비스의 라우트를 등록합니다.
//
//   - 상태 엔드포인트: / 및 /health (GET, HEAD)
//   - API 문서: /docs (Swagger UI), /redoc (ReDoc), /openapi.json, /swagger/* (내장 Swagger UI)
func RegisterRoutes(e *echo.Echo, statusHandler *status.Handler, docsHandler *docs.Handler) {
	registerStatusRoutes(e, statusHandler)
	registerDocsRoutes(e, docsHandler)
}

func registerStatusRoutes(e *echo.Echo, h *status.Handler) {
	methods := []string{http.MethodGet, http.MethodHead}

	e.Match(methods, "/", h.RootHandler)
	e.Match(methods, "/health", h.HealthCheckHandler)
}

func registerDocsRoutes(e *echo.Echo, h *docs.Handler) {
	e.GET("/docs", h.SwaggerUIHandler)
	e.GET("/redoc", h.RedocHandler)
	e.GET(docs.SpecURL, h.OpenAPIHandler)

	// CDN 에 접근할 수 없는 환경을 위한 내장 Swagger UI
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL(docs.SpecURL),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
