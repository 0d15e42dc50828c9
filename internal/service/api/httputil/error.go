package httputil

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/model/response"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// defaultMessages echo 기본 메시지(예: "Not Found") 대신 클라이언트에게 보여줄 메시지입니다.
var defaultMessages = map[int]string{
	http.StatusNotFound:            constants.ErrMsgNotFound,
	http.StatusMethodNotAllowed:    constants.ErrMsgMethodNotAllowed,
	http.StatusTooManyRequests:     constants.ErrMsgTooManyRequests,
	http.StatusInternalServerError: constants.ErrMsgInternalServer,
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 에러 발생 시 적절한 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = resolveMessage(he)
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답을 시도하지 않는다.
	if c.Response().Committed {
		return
	}

	// HEAD 요청은 헤더만 반환한다.
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func resolveMessage(he *echo.HTTPError) string {
	switch msg := he.Message.(type) {
	case response.ErrorResponse:
		return msg.Message
	case string:
		// echo가 생성한 기본 문구(http.StatusText)는 서비스 메시지로 교체한다.
		if msg != http.StatusText(he.Code) && msg != "" {
			return msg
		}
	}

	if m, ok := defaultMessages[he.Code]; ok {
		return m
	}
	return http.StatusText(he.Code)
}
