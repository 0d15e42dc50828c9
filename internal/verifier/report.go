package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/labstack/gommon/color"
)

const separatorWidth = 60

// ConsoleReporter 점검 결과를 사람이 읽기 쉬운 컬러 보고서로 출력합니다.
type ConsoleReporter struct {
	out   io.Writer
	color *color.Color
}

// NewConsoleReporter 보고서를 out 에 출력하는 ConsoleReporter 를 생성합니다.
// colored 가 false 이면 ANSI 색상 코드를 출력하지 않습니다.
func NewConsoleReporter(out io.Writer, colored bool) *ConsoleReporter {
	c := color.New()
	if colored {
		c.Enable()
	} else {
		c.Disable()
	}

	return &ConsoleReporter{out: out, color: c}
}

// Header 점검 시작 배너를 출력합니다.
func (r *ConsoleReporter) Header(baseURL string) {
	fmt.Fprintln(r.out, r.color.Blue("🎯 yoohoo.guru MCP Server Status Check"))
	fmt.Fprintf(r.out, "Testing server at: %s\n", baseURL)
	fmt.Fprintln(r.out, strings.Repeat("-", separatorWidth))
}

// Endpoint 엔드포인트 한 곳의 점검 결과를 출력합니다.
func (r *ConsoleReporter) Endpoint(ep Endpoint, result Result) {
	if result.Success {
		fmt.Fprintf(r.out, "%s %s (%s)\n", r.color.Green("✅"), ep.Description, ep.Path)

		if status, message, ok := statusField(result.Data); ok {
			fmt.Fprintf(r.out, "   Status: %s\n", r.color.Green(status))
			fmt.Fprintf(r.out, "   Message: %s\n", message)

			if expected, found := expectedMessages[ep.Path]; found && status == "healthy" {
				if message == expected {
					fmt.Fprintf(r.out, "   %s\n", r.color.Green("✓ Response matches expected format"))
				} else {
					fmt.Fprintf(r.out, "   %s\n", r.color.Yellow("⚠ Unexpected message format"))
				}
			}
		}

		fmt.Fprintf(r.out, "   Response time: %.3fs\n", result.ResponseTime)
	} else {
		fmt.Fprintf(r.out, "%s %s (%s)\n", r.color.Red("❌"), ep.Description, ep.Path)

		if result.Error != "" {
			fmt.Fprintf(r.out, "   Error: %s\n", result.Error)
		} else if result.StatusCode != 0 {
			fmt.Fprintf(r.out, "   HTTP %d\n", result.StatusCode)
		}
	}

	fmt.Fprintln(r.out)
}

// Footer 전체 판정 배너를 출력합니다.
func (r *ConsoleReporter) Footer(allPassed bool, verifiedAt time.Time) {
	fmt.Fprintln(r.out, strings.Repeat("-", separatorWidth))

	if allPassed {
		fmt.Fprintln(r.out, r.color.Green("🎉 MCP Server Status: ACTIVE - All checks passed!"))
		fmt.Fprintf(r.out, "Server verified at: %s\n", verifiedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
		return
	}

	fmt.Fprintln(r.out, r.color.Red("💥 MCP Server Status: ISSUES DETECTED"))
	fmt.Fprintln(r.out, "Some endpoints failed verification. Check the output above for details.")
}

// Interrupted 사용자 중단 메시지를 출력합니다.
func (r *ConsoleReporter) Interrupted() {
	fmt.Fprintln(r.out, r.color.Yellow("\n⚡ Status check interrupted"))
}

// UnexpectedError 예상치 못한 오류 메시지를 출력합니다.
func (r *ConsoleReporter) UnexpectedError(err error) {
	fmt.Fprintln(r.out, r.color.Red(fmt.Sprintf("💥 Unexpected error: %v", err)))
}

// Run 엔드포인트를 순서대로 점검하며 결과를 출력하고, 모든 점검이 성공했는지 반환합니다.
// 중간에 ctx 가 취소되면 진행 중이던 결과와 footer 를 출력하지 않고 false 를 반환합니다.
func (r *ConsoleReporter) Run(ctx context.Context, checker *Checker, endpoints []Endpoint, now func() time.Time) bool {
	r.Header(checker.BaseURL())

	allPassed := true
	for _, ep := range endpoints {
		result := checker.Check(ctx, ep.Path)
		if ctx.Err() != nil {
			return false
		}

		r.Endpoint(ep, result)
		allPassed = allPassed && result.Success
	}

	r.Footer(allPassed, now())
	return allPassed
}

// EndpointsSummary JSON 요약에 포함되는 상태 엔드포인트 결과입니다.
type EndpointsSummary struct {
	Root   Result `json:"root"`
	Health Result `json:"health"`
}

// Summary 자동화된 모니터링을 위한 JSON 요약입니다.
type Summary struct {
	Timestamp time.Time        `json:"timestamp"`
	ServerURL string           `json:"server_url"`
	Status    string           `json:"status"`
	Endpoints EndpointsSummary `json:"endpoints"`
}

// 서버 상태 값
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// NewSummary 루트와 헬스체크 결과로 JSON 요약을 구성합니다. 두 점검이 모두 성공해야 active 입니다.
func NewSummary(serverURL string, root, health Result, now time.Time) Summary {
	status := StatusInactive
	if root.Success && health.Success {
		status = StatusActive
	}

	return Summary{
		Timestamp: now.UTC(),
		ServerURL: serverURL,
		Status:    status,
		Endpoints: EndpointsSummary{Root: root, Health: health},
	}
}

// Active 서버가 active 상태인지 반환합니다.
func (s Summary) Active() bool {
	return s.Status == StatusActive
}

// WriteJSON 요약을 들여쓰기 2칸의 JSON 으로 출력합니다.
func (s Summary) WriteJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(s)
}
