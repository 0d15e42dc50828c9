package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로그 파일(Main, Critical, Verbose)의 리소스 해제를 통합 관리합니다.
//
// Hook을 먼저 비활성화하여 닫히는 파일에 쓰기가 시도되지 않도록 하며,
// 일부 파일 닫기에 실패하더라도 나머지 파일의 Close()는 모두 수행합니다.
// Close()는 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed int32 // 0: open, 1: closed
}

func (c *closer) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}

		// 파일을 닫기 전에 OS 버퍼를 플러시한다. Sync 에러보다 Close 에러가 더 중요하므로 무시한다.
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}

		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
