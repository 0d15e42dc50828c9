// Package testutil 서버 생명주기 테스트에서 사용하는 네트워크 헬퍼를 제공합니다.
package testutil

import (
	"context"
	"net"
	"net/http"
	"time"

	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
)

// GetFreePort 테스트용으로 사용 가능한 임의의 루프백 포트를 반환합니다.
func GetFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.System, "사용 가능한 포트를 찾을 수 없습니다")
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForHTTP url 이 200 OK 를 응답할 때까지 폴링합니다.
func WaitForHTTP(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := &http.Client{Timeout: time.Second}
	defer client.CloseIdleConnections()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "잘못된 URL 입니다")
		}

		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return apperrors.Newf(apperrors.Timeout, "%s 가 %v 안에 응답하지 않았습니다", url, timeout)
		case <-ticker.C:
		}
	}
}

// WaitForClosed 주소에 더 이상 TCP 연결이 되지 않을 때까지 대기합니다.
func WaitForClosed(address string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err != nil {
			return nil
		}
		conn.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return apperrors.Newf(apperrors.Timeout, "%s 가 %v 안에 종료되지 않았습니다", address, timeout)
}
