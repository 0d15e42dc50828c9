package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/yoohooguru/mcp-server/internal/config"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	"github.com/yoohooguru/mcp-server/internal/pkg/version"
	"github.com/yoohooguru/mcp-server/internal/service"
	"github.com/yoohooguru/mcp-server/internal/service/api"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시 또는 태그
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const banner = `
                 _
 _   _  ___   ___ | |__   ___   ___     __ _ _   _ _ __ _   _
| | | |/ _ \ / _ \| '_ \ / _ \ / _ \   / _' | | | | '__| | | |
| |_| | (_) | (_) | | | | (_) | (_) |_| (_| | |_| | |  | |_| |
 \__, |\___/ \___/|_| |_|\___/ \___/(_)\__, |\__,_|_|   \__,_|
 |___/                                 |___/       MCP %s
--------------------------------------------------------------------------------
`

// cliFlags 명령행 인자
type cliFlags struct {
	configFile string
	envFile    string
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var f cliFlags

	fs := flag.NewFlagSet("mcp-server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configFile, "config", "", "선택적인 JSON 설정 파일 경로")
	fs.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "선택적인 dotenv 파일 경로 (없으면 무시)")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load(config.LoadOptions{File: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화 (레벨 문자열은 검증 단계에서 이미 확인됨)
	level, err := applog.ParseLevel(appConfig.LogLevel)
	if err != nil {
		level = applog.InfoLevel
	}

	var logOpts applog.Options
	if appConfig.IsDevelopment() {
		logOpts = applog.NewDevelopmentOptions(config.AppID, level)
	} else {
		logOpts = applog.NewProductionOptions(config.AppID, level)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	fmt.Printf(banner, config.AppVersion)

	buildInfo := version.New(Version, BuildDate, BuildNumber)
	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     appConfig.Environment,
		"address": appConfig.Address(),
	}).Info("서버 초기화 시작")
	applog.WithComponentAndFields("main", buildInfo.Fields()).Debug("빌드 정보")

	if placeholders := appConfig.PlaceholderSettings(); len(placeholders) > 0 {
		applog.WithComponentAndFields("main", placeholders).Warn("아직 사용되지 않는 예약 설정이 지정되어 있습니다")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = serve(ctx, []service.Service{api.NewService(appConfig)})
	stop()

	if err != nil {
		appLogCloser.Close()
		os.Exit(1)
	}
}

// serve 서비스들을 시작하고, ctx 가 취소(종료 신호)되거나 서비스 하나가 비정상 종료될 때까지 대기한 뒤
// 모든 서비스를 정리합니다. 서비스가 비정상 종료된 경우 그 원인 에러를 반환합니다.
func serve(ctx context.Context, services []service.Service) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	// 각 서비스의 비정상 종료를 하나의 채널로 모은다.
	fatalErrC := make(chan error, len(services))
	for _, s := range services {
		go func(errC <-chan error) {
			select {
			case err := <-errC:
				fatalErrC <- err
			case <-serviceStopCtx.Done():
			}
		}(s.Err())
	}

	applog.WithComponent("main").Info("서버 가동 완료")

	var fatalErr error
	select {
	case <-ctx.Done():
		applog.WithComponent("main").Info("종료 신호를 수신했습니다")
	case fatalErr = <-fatalErrC:
		applog.WithComponentAndFields("main", applog.Fields{
			"error":      fatalErr,
			"error_type": apperrors.UnderlyingType(fatalErr).String(),
			"root_cause": apperrors.RootCause(fatalErr).Error(),
		}).Error("서비스가 비정상 종료되어 서버를 중단합니다")
	}

	cancel()
	serviceStopWG.Wait()

	return fatalErr
}
