package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup에서 생성된 로그 파일들을 한 번에 정리합니다.
// hook을 먼저 닫아 닫힌 파일로의 쓰기를 막은 뒤, 각 파일을 Sync 후 Close 합니다.
type closer struct {
	closers []io.Closer
	hook    *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
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
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
