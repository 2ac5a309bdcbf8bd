package router

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
)

type contextKey string

const sessionMetadataKey contextKey = "session-metadata"

// Descriptor names a middleware so the runtime can report its chain.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// ChainOptions configure DefaultChain.
type ChainOptions struct {
	Logger             *log.Logger
	RateLimitPerMinute int
	RateLimitBurst     int
	MaxSessions        int
	Now                func() time.Time
}

// SessionInfo is stored on the session context before the handler runs.
type SessionInfo struct {
	User         string
	RemoteIP     string
	ObserverHash string
	Term         string
	StartedAt    time.Time
}

// DefaultChain returns the SSH middleware in execution order: access log,
// rate limit, session limit, active terminal and session metadata.
func DefaultChain(opts ChainOptions) []Descriptor {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return []Descriptor{
		{Name: "access-log", Middleware: logging.MiddlewareWithLogger(opts.Logger)},
		{Name: "rate-limit", Middleware: RateLimitMiddleware(opts.RateLimitPerMinute, opts.RateLimitBurst, opts.Logger)},
		{Name: "session-limit", Middleware: SessionLimitMiddleware(opts.MaxSessions, opts.Logger)},
		{Name: "active-terminal", Middleware: activeterm.Middleware()},
		{Name: "session-metadata", Middleware: sessionMetadata(opts.Logger, opts.Now)},
	}
}

// MiddlewareFromDescriptors unwraps the chain, keeping execution order:
// index 0 sees the session first.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	out := make([]wish.Middleware, 0, len(chain))
	for _, d := range chain {
		out = append(out, d.Middleware)
	}
	return out
}

// Names lists descriptor names in order.
func Names(chain []Descriptor) []string {
	out := make([]string, 0, len(chain))
	for _, d := range chain {
		out = append(out, d.Name)
	}
	return out
}

// InfoFromSession returns the SessionInfo stored by the session-metadata
// middleware.
func InfoFromSession(s ssh.Session) (SessionInfo, bool) {
	info, ok := s.Context().Value(sessionMetadataKey).(SessionInfo)
	return info, ok
}

func sessionMetadata(logger *log.Logger, now func() time.Time) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := remoteIP(s)
			info := SessionInfo{
				User:         s.User(),
				RemoteIP:     ip,
				ObserverHash: observerHash(ip),
				Term:         sessionTerm(s),
				StartedAt:    now().UTC(),
			}
			s.Context().SetValue(sessionMetadataKey, info)

			logger.Info("session started", "event", "session_start", "observer", info.ObserverHash, "term", info.Term)
			next(s)
			logger.Info("session ended", "event", "session_end", "observer", info.ObserverHash,
				"duration", now().UTC().Sub(info.StartedAt).Round(time.Millisecond))
		}
	}
}

// observerHash identifies a visitor in logs without recording the address.
func observerHash(remote string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(remote)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:12]
}

func sessionTerm(s ssh.Session) string {
	if pty, _, ok := s.Pty(); ok && pty.Term != "" {
		return pty.Term
	}
	for _, kv := range s.Environ() {
		if v, ok := strings.CutPrefix(kv, "TERM="); ok {
			return v
		}
	}
	return ""
}
