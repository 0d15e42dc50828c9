package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/httputil"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

const (
	// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
	stackBufferSize = 4 << 10
)

// PanicRecovery 핸들러에서 발생한 panic을 복구하여 스택 트레이스와 함께 기록하고,
// 클라이언트에게는 500 응답을 반환하는 미들웨어입니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				// http.ErrAbortHandler 는 net/http 가 의도적으로 사용하는 panic 이므로 다시 던진다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err, ok := r.(error)
				if !ok {
					err = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"stack":  string(stack[:length]),
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				returnErr = httputil.NewInternalServerError(constants.ErrMsgInternalServer)
			}()

			return next(c)
		}
	}
}
