package router

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const defaultMaxSessions = 32

// SessionLimitMiddleware caps concurrent sessions. A slot is released when
// the handler returns or the session context ends, whichever comes first.
func SessionLimitMiddleware(limit int, logger *log.Logger) wish.Middleware {
	if limit <= 0 {
		limit = defaultMaxSessions
	}
	if logger == nil {
		logger = log.Default()
	}
	slots := make(chan struct{}, limit)

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			select {
			case slots <- struct{}{}:
			default:
				logger.Warn("session refused", "event", "session_limit_reached", "max", limit)
				_, _ = s.Write([]byte("max sessions exceeded\n"))
				return
			}

			var once sync.Once
			release := func() { once.Do(func() { <-slots }) }
			stop := context.AfterFunc(s.Context(), release)
			defer func() {
				stop()
				release()
				if r := recover(); r != nil {
					logger.Error("session handler panicked", "event", "session_panic", "panic", r)
				}
			}()

			next(s)
		}
	}
}
