package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/httputil"
	appmiddleware "github.com/yoohooguru/mcp-server/internal/service/api/middleware"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// RateLimitPerSecond IP별 초당 허용 요청 수 (0이면 기본값 사용)
	RateLimitPerSecond int

	// RateLimitBurst IP별 순간 최대 허용 요청 수 (0이면 기본값 사용)
	RateLimitBurst int
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다 (순서가 중요합니다):
//
//  1. PanicRecovery - 다른 미들웨어에서 발생한 panic 까지 복구하도록 가장 먼저 적용
//  2. RequestID - UUID 형식의 X-Request-ID 부여. 로그에 request_id 가 포함되도록 로깅보다 먼저 적용
//  3. ServerHeader - Server 헤더 제거
//  4. HTTPLogger - 429 응답도 기록되도록 RateLimiting 보다 먼저 적용
//  5. RateLimiting - IP 기반 요청 제한 (상태 엔드포인트 / 및 /health 는 제외)
//  6. Secure - X-XSS-Protection, X-Content-Type-Options 등 보안 헤더
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	// 클라이언트 IP는 TCP 연결의 원격 주소만 사용한다. X-Forwarded-For 등 요청 헤더는 신뢰하지 않는다.
	e.IPExtractor = echo.ExtractIPDirect()

	rps := cfg.RateLimitPerSecond
	if rps == 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.RateLimitBurst
	if burst == 0 {
		burst = constants.DefaultRateLimitBurst
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.ServerHeader())
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(rps, burst, isStatusRequest))
	e.Use(middleware.Secure())

	return e
}

// isStatusRequest 모니터링용 상태 엔드포인트 요청인지 확인합니다. 상태 엔드포인트는 요청 속도 제한 없이 항상 응답합니다.
func isStatusRequest(c echo.Context) bool {
	switch c.Request().URL.Path {
	case "/", "/health":
		return true
	default:
		return false
	}
}
