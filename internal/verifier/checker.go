// Package verifier 실행 중인 MCP 서버의 엔드포인트를 점검하고 결과를 보고합니다.
//
// 엔드포인트는 하나의 연결 풀을 공유하며 순차적으로 점검됩니다. 한 엔드포인트의 실패(연결 거부, 시간 초과,
// 잘못된 응답)는 해당 결과에만 기록되고 나머지 점검은 계속됩니다.
package verifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
	"golang.org/x/net/html/charset"
)

// component 검증기 로깅용 컴포넌트 이름
const component = "verifier"

// maxBodyBytes 점검 시 읽어들이는 응답 본문의 최대 크기입니다 (10MB).
const maxBodyBytes = 10 << 20

// DefaultBaseURL 검증 대상 서버의 기본 주소입니다.
const DefaultBaseURL = "http://localhost:8000"

// Option Checker 생성 옵션입니다.
type Option func(*Checker)

// WithTimeout 엔드포인트별 요청 제한 시간을 지정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithFetcher 요청을 수행할 Fetcher 를 지정합니다. (테스트용)
func WithFetcher(f Fetcher) Option {
	return func(c *Checker) {
		c.fetcher = f
	}
}

// Checker 서버 주소 하나에 대해 엔드포인트 점검을 수행합니다. 상태를 보관하지 않습니다.
type Checker struct {
	baseURL string
	timeout time.Duration
	fetcher Fetcher
}

// New 지정된 서버 주소를 점검하는 Checker 를 생성합니다.
// 주소는 http 또는 https 스킴과 호스트를 포함해야 합니다.
func New(baseURL string, opts ...Option) (*Checker, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("서버 주소를 해석할 수 없습니다: '%s'", baseURL))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "서버 주소는 http(s)://host[:port] 형식이어야 합니다: '%s'", baseURL)
	}

	c := &Checker{
		baseURL: strings.TrimRight(u.String(), "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(c.timeout)
	}

	return c, nil
}

// BaseURL 점검 대상 서버 주소를 반환합니다.
func (c *Checker) BaseURL() string {
	return c.baseURL
}

// Close 공유 연결 풀의 유휴 연결을 닫습니다.
func (c *Checker) Close() {
	if closer, ok := c.fetcher.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// CheckAll 엔드포인트를 순서대로 점검합니다. ctx 가 취소되면 남은 엔드포인트는 점검하지 않습니다.
func (c *Checker) CheckAll(ctx context.Context, endpoints []Endpoint) []Result {
	results := make([]Result, 0, len(endpoints))
	for _, ep := range endpoints {
		if ctx.Err() != nil {
			break
		}
		results = append(results, c.Check(ctx, ep.Path))
	}
	return results
}

// Check 엔드포인트 한 곳에 GET 요청을 보내 결과를 반환합니다. 실패는 Result.Error 에 기록됩니다.
func (c *Checker) Check(ctx context.Context, path string) Result {
	result := Result{Endpoint: path}

	if err := c.check(ctx, path, &result); err != nil {
		result.Success = false
		result.Error = err.Error()

		applog.WithComponentAndFields(component, applog.Fields{
			"endpoint":    path,
			"status_code": result.StatusCode,
			"error":       err,
			"error_type":  apperrors.UnderlyingType(err).String(),
			"root_cause":  apperrors.RootCause(err).Error(),
		}).Debug("엔드포인트 점검 실패")
	}

	return result
}

func (c *Checker) check(ctx context.Context, path string, result *Result) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "요청을 생성할 수 없습니다")
	}

	start := time.Now()
	resp, err := c.fetcher.Do(req)
	if err != nil {
		return classifyError(err, c.timeout)
	}
	defer drainAndCloseBody(resp.Body)

	result.ResponseTime = time.Since(start).Seconds()
	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode == http.StatusOK
	result.ContentType = resp.Header.Get("Content-Type")
	if result.ContentType == "" {
		result.ContentType = "unknown"
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyError(err, c.timeout)
	}

	switch {
	case strings.HasPrefix(result.ContentType, "application/json"):
		if !gjson.ValidBytes(body) {
			return apperrors.New(apperrors.ParsingFailed, "응답 본문이 올바른 JSON 이 아닙니다")
		}
		result.Data = body

	case strings.HasPrefix(result.ContentType, "text/html"):
		result.Title = extractTitle(body, result.ContentType)
	}

	return nil
}

// extractTitle HTML 문서의 <title> 을 추출합니다. Content-Type 의 charset 을 따라 UTF-8 로 변환한 뒤 파싱합니다.
func extractTitle(body []byte, contentType string) string {
	utf8Reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

// classifyError 요청 실패 원인을 ErrorType 으로 분류합니다.
func classifyError(err error, timeout time.Duration) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.Wrapf(err, apperrors.Timeout, "요청 시간이 초과되었습니다 (%v)", timeout)
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.Internal, "요청이 취소되었습니다")
	default:
		return apperrors.Wrap(err, apperrors.Unavailable, "서버에 연결할 수 없습니다")
	}
}

// statusField JSON 응답에서 status/message 필드를 읽습니다. status 필드가 없으면 ok 는 false 입니다.
func statusField(data []byte) (status, message string, ok bool) {
	if len(data) == 0 {
		return "", "", false
	}

	fields := gjson.GetManyBytes(data, "status", "message")
	if !fields[0].Exists() {
		return "", "", false
	}

	message = "No message"
	if fields[1].Exists() {
		message = fields[1].String()
	}

	return fields[0].String(), message, true
}
