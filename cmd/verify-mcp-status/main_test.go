package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoohooguru/mcp-server/internal/config"
	"github.com/yoohooguru/mcp-server/internal/service/api"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMCPServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Defaults()
	srv := httptest.NewServer(api.NewApplication(&cfg))
	t.Cleanup(srv.Close)
	return srv
}

func unreachableURL(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}

func TestRun_HumanReadable(t *testing.T) {
	srv := newMCPServer(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--url", srv.URL}, &stdout, &stderr, false)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "MCP Server Status: ACTIVE - All checks passed!")
	assert.Empty(t, stderr.String())
}

func TestRun_JSON(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		srv := newMCPServer(t)

		var stdout bytes.Buffer
		code := run(context.Background(), []string{"--url", srv.URL, "--json"}, &stdout, new(bytes.Buffer), false)
		require.Equal(t, exitOK, code)

		var summary map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
		assert.Equal(t, "active", summary["status"])
		assert.Equal(t, srv.URL, summary["server_url"])

		endpoints := summary["endpoints"].(map[string]any)
		root := endpoints["root"].(map[string]any)
		assert.Equal(t, "/", root["endpoint"])
		assert.Equal(t, "healthy", root["data"].(map[string]any)["status"])
	})

	t.Run("inactive", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		}))
		defer srv.Close()

		var stdout bytes.Buffer
		code := run(context.Background(), []string{"--url", srv.URL, "--json"}, &stdout, new(bytes.Buffer), false)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout.String(), `"status": "inactive"`)
	})
}

func TestRun_Failures(t *testing.T) {
	t.Run("서버 응답 없음", func(t *testing.T) {
		var stdout bytes.Buffer
		code := run(context.Background(), []string{"--url", unreachableURL(t), "--timeout", "2s"}, &stdout, new(bytes.Buffer), false)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout.String(), "MCP Server Status: ISSUES DETECTED")
		assert.Contains(t, stdout.String(), "Error: [Unavailable]")
	})

	t.Run("잘못된 주소", func(t *testing.T) {
		var stdout bytes.Buffer
		code := run(context.Background(), []string{"--url", "localhost:8000"}, &stdout, new(bytes.Buffer), false)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout.String(), "💥 Unexpected error:")
	})

	t.Run("알 수 없는 인자", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run(context.Background(), []string{"--verbose"}, new(bytes.Buffer), &stderr, false)

		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "-url")
	})

	t.Run("중단", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stdout bytes.Buffer
		code := run(ctx, []string{"--url", unreachableURL(t)}, &stdout, new(bytes.Buffer), false)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout.String(), "⚡ Status check interrupted")
	})
}
