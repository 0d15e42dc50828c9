package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoohooguru/mcp-server/internal/config"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	"github.com/yoohooguru/mcp-server/internal/service/api"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// ====================================================================================================
// Test Helpers
// ====================================================================================================

// newMCPServer 실제 MCP 애플리케이션을 제공하는 테스트 서버를 시작합니다.
func newMCPServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Defaults()
	srv := httptest.NewServer(api.NewApplication(&cfg))
	t.Cleanup(srv.Close)
	return srv
}

func newChecker(t *testing.T, baseURL string, opts ...Option) *Checker {
	t.Helper()

	c, err := New(baseURL, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// unreachableURL 아무도 리스닝하지 않는 루프백 주소를 반환합니다.
func unreachableURL(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}

// mockFetcher testify/mock 기반 Fetcher 입니다.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func newResponse(code int, contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: code,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// ====================================================================================================
// Constructor Tests
// ====================================================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"성공: 기본 주소", DefaultBaseURL, "http://localhost:8000", false},
		{"성공: 끝의 슬래시 제거", "https://mcp.example.com/", "https://mcp.example.com", false},
		{"실패: 스킴 없음", "localhost:8000", "", true},
		{"실패: 지원하지 않는 스킴", "ftp://localhost", "", true},
		{"실패: 해석 불가", "http://[::1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			defer c.Close()
			assert.Equal(t, tt.want, c.BaseURL())
			assert.Equal(t, DefaultTimeout, c.timeout)
		})
	}
}

// ====================================================================================================
// Check Tests
// ====================================================================================================

func TestCheck_AgainstRealApplication(t *testing.T) {
	srv := newMCPServer(t)
	c := newChecker(t, srv.URL)

	results := c.CheckAll(context.Background(), DefaultEndpoints)
	require.Len(t, results, len(DefaultEndpoints))

	for _, r := range results {
		assert.True(t, r.Success, "%s: %s", r.Endpoint, r.Error)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Empty(t, r.Error)
		assert.Greater(t, r.ResponseTime, 0.0)
	}

	root := results[0]
	status, message, ok := statusField(root.Data)
	require.True(t, ok)
	assert.Equal(t, "healthy", status)
	assert.Equal(t, "yoohoo.guru MCP Server is running", message)

	docs := results[2]
	assert.Contains(t, docs.ContentType, "text/html")
	assert.Equal(t, "yoohoo.guru MCP Server - Swagger UI", docs.Title)

	schema := results[3]
	assert.Equal(t, "application/json", schema.ContentType)
	assert.NotEmpty(t, schema.Data)
}

func TestCheck_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"status":"unhealthy"}`)
	}))
	defer srv.Close()

	c := newChecker(t, srv.URL)
	r := c.Check(context.Background(), "/health")

	assert.False(t, r.Success)
	assert.Equal(t, http.StatusServiceUnavailable, r.StatusCode)
	assert.Empty(t, r.Error)
	assert.JSONEq(t, `{"status":"unhealthy"}`, string(r.Data))
}

func TestCheck_ConnectionRefused(t *testing.T) {
	c := newChecker(t, unreachableURL(t))

	r := c.Check(context.Background(), "/")

	assert.False(t, r.Success)
	assert.Zero(t, r.StatusCode)
	assert.Zero(t, r.ResponseTime)
	assert.True(t, strings.HasPrefix(r.Error, "[Unavailable]"), r.Error)
}

func TestCheck_LogsFailureCause(t *testing.T) {
	logger := applog.StandardLogger()
	prevOut, prevFormatter, prevLevel := logger.Out, logger.Formatter, logger.GetLevel()
	t.Cleanup(func() {
		applog.SetOutput(prevOut)
		applog.SetFormatter(prevFormatter)
		applog.SetLevel(prevLevel)
	})

	var buf bytes.Buffer
	applog.SetOutput(&buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	c := newChecker(t, unreachableURL(t))
	c.Check(context.Background(), "/health")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry), buf.String())
	assert.Equal(t, "/health", entry["endpoint"])
	assert.Equal(t, "Unavailable", entry["error_type"])
	assert.NotEmpty(t, entry["root_cause"])
}

func TestCheck_SlowEndpointTimesOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	mux.HandleFunc("/fast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newChecker(t, srv.URL, WithTimeout(100*time.Millisecond))

	slow := c.Check(context.Background(), "/slow")
	fast := c.Check(context.Background(), "/fast")

	assert.False(t, slow.Success)
	assert.True(t, strings.HasPrefix(slow.Error, "[Timeout]"), slow.Error)
	assert.True(t, fast.Success)
}

func TestCheck_InvalidJSON(t *testing.T) {
	t.Parallel()

	f := &mockFetcher{}
	f.On("Do", mock.Anything).Return(newResponse(http.StatusOK, "application/json", `{"status":`), nil)

	c := newChecker(t, DefaultBaseURL, WithFetcher(f))
	r := c.Check(context.Background(), "/")

	assert.False(t, r.Success)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.True(t, strings.HasPrefix(r.Error, "[ParsingFailed]"), r.Error)
	f.AssertExpectations(t)
}

func TestCheck_RequestDetails(t *testing.T) {
	t.Parallel()

	f := &mockFetcher{}
	f.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && req.URL.String() == "http://localhost:8000/health"
	})).Return(newResponse(http.StatusOK, "", "ok"), nil).Once()

	c := newChecker(t, DefaultBaseURL, WithFetcher(f))
	r := c.Check(context.Background(), "/health")

	assert.True(t, r.Success)
	assert.Equal(t, "unknown", r.ContentType)
	assert.Empty(t, r.Data)
	f.AssertExpectations(t)
}

func TestCheckAll_StopsWhenCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &mockFetcher{}
	c := newChecker(t, DefaultBaseURL, WithFetcher(f))

	assert.Empty(t, c.CheckAll(ctx, DefaultEndpoints))
	f.AssertNotCalled(t, "Do", mock.Anything)
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"시간 초과", context.DeadlineExceeded, "[Timeout]"},
		{"취소", context.Canceled, "[Internal]"},
		{"연결 실패", errors.New("connection refused"), "[Unavailable]"},
	}

	for _, tt := range tests {
		got := classifyError(tt.err, time.Second)
		assert.True(t, strings.HasPrefix(got.Error(), tt.want), "%s: %v", tt.name, got)
		assert.Equal(t, "["+apperrors.UnderlyingType(got).String()+"]", tt.want)
		assert.Equal(t, tt.err, apperrors.RootCause(got))
		assert.ErrorIs(t, got, tt.err)
	}
}

func TestHTTPFetcher_SetsUserAgent(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.UserAgent()
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	defer f.CloseIdleConnections()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := f.Do(req)
	require.NoError(t, err)
	drainAndCloseBody(resp.Body)

	assert.Equal(t, userAgent, <-got)
	assert.Empty(t, req.Header.Get("User-Agent"), "원본 요청은 수정되지 않아야 합니다")
	assert.Equal(t, DefaultTimeout, f.client.Timeout)
}
