package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/httputil"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
	"golang.org/x/time/rate"
)

// RateLimiting IP 기반 요청 속도 제한 미들웨어를 반환합니다.
//
// 클라이언트 식별에는 c.RealIP() 를 사용하므로, 신뢰할 수 없는 프록시 헤더를 무시하려면
// Echo 인스턴스에 IPExtractor 를 지정해야 합니다. IP별 Token Bucket 은 constants.DefaultRateLimitExpiresIn
// 동안 요청이 없으면 정리됩니다. skipper 가 true 를 반환한 요청은 제한하지 않습니다.
//
// 제한을 초과한 요청에는 Retry-After 헤더와 함께 429 Too Many Requests 를 응답합니다.
//
// Panics:
//   - requestsPerSecond 또는 burst 가 0 이하인 경우
func RateLimiting(requestsPerSecond int, burst int, skipper echomiddleware.Skipper) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}
	if skipper == nil {
		skipper = echomiddleware.DefaultSkipper
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(requestsPerSecond),
		Burst:     burst,
		ExpiresIn: constants.DefaultRateLimitExpiresIn,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
				"remote_ip": identifier,
				"path":      c.Request().URL.Path,
				"method":    c.Request().Method,
			}).Warn(constants.LogMsgRateLimitExceeded)

			c.Response().Header().Set("Retry-After", "1")

			return httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
		},
	})
}
