// verify-mcp-status 실행 중인 MCP 서버의 엔드포인트를 점검하고 결과를 출력합니다.
//
// 사람이 읽는 보고서 모드에서는 모든 엔드포인트가 통과하면 0, 아니면 1 로 종료합니다.
// --json 모드에서는 루트와 헬스체크 결과를 JSON 요약으로 출력하고, 서버가 active 일 때만 0 으로 종료합니다.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/yoohooguru/mcp-server/internal/verifier"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	url     string
	json    bool
	timeout time.Duration
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("verify-mcp-status", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.url, "url", verifier.DefaultBaseURL, "Base URL of the MCP server")
	fs.BoolVar(&o.json, "json", false, "Output results in JSON format")
	fs.DurationVar(&o.timeout, "timeout", verifier.DefaultTimeout, "Per-endpoint request timeout")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

// colorEnabled 표준 출력이 터미널이고 NO_COLOR 가 설정되지 않은 경우에만 색상을 사용합니다.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, colored bool) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	reporter := verifier.NewConsoleReporter(stdout, colored)

	checker, err := verifier.New(opts.url, verifier.WithTimeout(opts.timeout))
	if err != nil {
		reporter.UnexpectedError(err)
		return exitFailure
	}
	defer checker.Close()

	if opts.json {
		results := checker.CheckAll(ctx, []verifier.Endpoint{{Path: "/"}, {Path: "/health"}})
		if ctx.Err() != nil || len(results) != 2 {
			reporter.Interrupted()
			return exitFailure
		}

		summary := verifier.NewSummary(opts.url, results[0], results[1], time.Now())
		if err := summary.WriteJSON(stdout); err != nil {
			reporter.UnexpectedError(err)
			return exitFailure
		}
		if !summary.Active() {
			return exitFailure
		}
		return exitOK
	}

	if reporter.Run(ctx, checker, verifier.DefaultEndpoints, time.Now) {
		return exitOK
	}
	if ctx.Err() != nil {
		reporter.Interrupted()
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, colorEnabled())
	stop()

	os.Exit(code)
}
