package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// sensitiveQueryParams 로그 기록 시 값을 마스킹해야 하는 쿼리 파라미터 키 목록입니다.
var sensitiveQueryParams = []string{
	"access_token",
	"api_key",
	"password",
	"secret",
	"token",
}

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 에러는 미들웨어 안에서 c.Error 로 먼저 처리하므로, 로그에는 에러 핸들러가 결정한 최종 상태 코드가 기록됩니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			// defer를 사용하여 패닉 발생 시에도 로그가 기록되도록 한다.
			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = "0"
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogger, applog.Fields{
					"method":        req.Method,
					"path":          path,
					"uri":           maskSensitiveQueryParams(req.RequestURI),
					"host":          req.Host,
					"protocol":      req.Proto,
					"remote_ip":     c.RealIP(),
					"user_agent":    req.UserAgent(),
					"status":        res.Status,
					"bytes_in":      bytesIn,
					"bytes_out":     strconv.FormatInt(res.Size, 10),
					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),
					"request_id":    res.Header().Get(echo.HeaderXRequestID),
				}).Info(constants.LogMsgHTTPRequest)
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다.
// URI 파싱에 실패하면 원본을 그대로 반환합니다.
//
//	입력: "/health?token=secret-token-value&id=100"
//	출력: "/health?id=100&token=secr%2A%2A%2Aalue"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range sensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, applog.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
