package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	_ "github.com/yoohooguru/mcp-server/docs"
	"github.com/yoohooguru/mcp-server/internal/config"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/handler/docs"
	"github.com/yoohooguru/mcp-server/internal/service/api/handler/status"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// Service MCP HTTP 서버의 생명주기를 관리하는 서비스입니다.
//
// Start() 로 시작하면 고루틴에서 Echo 서버를 구동하고, context 가 취소되면
// 진행 중인 요청을 최대 5초간 기다린 뒤 종료합니다. 종료 요청 없이 서버가 멈추면(포트 바인딩 실패 등)
// 원인 에러를 Err() 채널로 전달합니다.
type Service struct {
	appConfig *config.AppConfig

	running   bool
	runningMu sync.Mutex

	fatalErrC chan error
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}

	return &Service{
		appConfig: appConfig,

		fatalErrC: make(chan error, 1),
	}
}

// Start API 서비스를 시작합니다.
//
// 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
// 이미 실행 중이면 경고만 남기고 serviceStopWG.Done() 을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// Err 서버가 종료 요청 없이 멈췄을 때 원인 에러를 한 번 전달하는 채널을 반환합니다.
// 정상적인 Graceful Shutdown 에서는 아무 값도 전달되지 않습니다.
func (s *Service) Err() <-chan error {
	return s.fatalErrC
}

// Running 서비스 실행 여부를 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.running
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := NewApplication(s.appConfig)

	httpServerDone := make(chan error, 1)
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// NewApplication 미들웨어와 라우트가 모두 구성된 Echo 인스턴스를 생성합니다.
// 리스너를 열지 않으므로 httptest 서버에 그대로 연결하여 사용할 수 있습니다.
func NewApplication(appConfig *config.AppConfig) *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug: appConfig.IsDevelopment(),
	})

	RegisterRoutes(e, status.NewHandler(config.AppVersion), docs.NewHandler(config.AppName))

	return e
}

// startHTTPServer HTTP 서버를 시작하고, 서버가 종료되면 done 채널을 닫습니다.
// 정상 종료가 아니면 닫기 전에 원인 에러를 done 으로 보냅니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan<- error) {
	defer close(done)

	address := s.appConfig.Address()
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"address": address,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	if err := s.handleServerError(e.Start(address)); err != nil {
		done <- err
	}
}

// handleServerError HTTP 서버 종료 에러를 처리합니다.
//
//   - http.ErrServerClosed: Graceful Shutdown 으로 인한 정상 종료 (Info)
//   - 그 외: 포트 바인딩 실패 등 예상치 못한 에러 (Error, 에러 반환)
func (s *Service) handleServerError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return nil
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"address": s.appConfig.Address(),
		"error":   err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)

	return err
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown 을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone <-chan error) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case err := <-httpServerDone:
		// HTTP 서버가 이미 종료되었으므로 Shutdown 호출 없이 상태만 정리한다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()
		s.reportFatal(err)

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

// reportFatal 비정상 종료 원인을 Err() 채널로 전달합니다. 이미 전달된 에러가 있으면 버립니다.
func (s *Service) reportFatal(err error) {
	if err == nil {
		err = apperrors.New(apperrors.System, constants.LogMsgServiceUnexpectedExit)
	} else {
		err = apperrors.Wrap(err, apperrors.System, constants.LogMsgServiceUnexpectedExit)
	}

	select {
	case s.fatalErrC <- err:
	default:
	}
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
