package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup이 만든 로그 리소스(hook, 파일)를 한 번에 해제합니다.
// 여러 번 호출해도 안전하며, 두 번째 호출부터는 아무 일도 하지 않습니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	// 파일을 닫기 전에 hook을 먼저 막아 닫힌 파일에 대한 쓰기를 방지한다.
	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
