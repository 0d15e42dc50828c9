package verifier

import (
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout 엔드포인트 한 곳에 대한 요청 제한 시간입니다.
	DefaultTimeout = 10 * time.Second

	// userAgent 점검 요청에 사용하는 User-Agent 입니다.
	userAgent = "verify-mcp-status/1.0"

	// maxDrainBytes 연결 재사용을 위해 읽고 버리는 응답 본문의 최대 크기입니다.
	maxDrainBytes = 64 << 10
)

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body 는 호출자가 반드시 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher net/http 클라이언트 기반 Fetcher 구현체입니다.
//
// 모든 점검 요청이 하나의 클라이언트(연결 풀)를 공유하므로, 같은 서버에 대한 연속 요청은 연결을 재사용합니다.
type HTTPFetcher struct {
	client *http.Client
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 요청 제한 시간이 설정된 HTTPFetcher 를 생성합니다. timeout 이 0 이하이면 DefaultTimeout 을 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

// Do User-Agent 가 비어 있으면 기본값을 채워 요청을 수행합니다. 원본 요청은 수정하지 않습니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
	}

	return f.client.Do(req)
}

// CloseIdleConnections 유휴 연결을 모두 닫습니다.
func (f *HTTPFetcher) CloseIdleConnections() {
	f.client.CloseIdleConnections()
}

// drainAndCloseBody 연결 재사용을 위해 응답 본문을 일정 크기까지 비우고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}
