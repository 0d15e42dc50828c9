// Package status 서비스 상태 엔드포인트(/, /health) 핸들러를 제공합니다.
//
// 두 엔드포인트는 동일한 StatusResponse 구조를 반환하며 메시지만 다릅니다.
// 요청마다 응답을 새로 구성할 뿐 어떤 상태도 보관하지 않으므로 항상 성공합니다.
package status

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/model/status"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// Handler 상태 엔드포인트 핸들러
type Handler struct {
	version string

	now func() time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(version string) *Handler {
	return &Handler{
		version: version,

		now: time.Now,
	}
}

// RootHandler GET / 요청에 서버가 실행 중임을 알리는 상태 응답을 반환합니다.
func (h *Handler) RootHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgStatusRequested)

	return h.respond(c, constants.MsgRootRunning)
}

// HealthCheckHandler GET /health 요청에 헬스체크 응답을 반환합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthRequested)

	return h.respond(c, constants.MsgHealthOperational)
}

// respond 상태 응답을 구성하여 반환합니다. HEAD 요청에는 본문 없이 헤더만 보냅니다.
func (h *Handler) respond(c echo.Context, message string) error {
	if c.Request().Method == http.MethodHead {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return c.NoContent(http.StatusOK)
	}

	return c.JSON(http.StatusOK, status.StatusResponse{
		Status:    constants.StatusHealthy,
		Message:   message,
		Timestamp: h.now().UTC(),
		Version:   h.version,
	})
}
