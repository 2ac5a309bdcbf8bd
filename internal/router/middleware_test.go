package router

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

type fakeContext struct {
	context.Context
	mu     sync.Mutex
	values map[any]any
	remote net.Addr
}

func (f *fakeContext) Lock()                         { f.mu.Lock() }
func (f *fakeContext) Unlock()                       { f.mu.Unlock() }
func (f *fakeContext) User() string                  { return "guest" }
func (f *fakeContext) SessionID() string             { return "test-session" }
func (f *fakeContext) ClientVersion() string         { return "ssh-test-client" }
func (f *fakeContext) ServerVersion() string         { return "ssh-test-server" }
func (f *fakeContext) RemoteAddr() net.Addr          { return f.remote }
func (f *fakeContext) LocalAddr() net.Addr           { return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2222} }
func (f *fakeContext) Permissions() *ssh.Permissions { return &ssh.Permissions{} }
func (f *fakeContext) SetValue(key, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}
func (f *fakeContext) Value(key any) any {
	f.mu.Lock()
	v, ok := f.values[key]
	f.mu.Unlock()
	if ok {
		return v
	}
	return f.Context.Value(key)
}

// fakeSession implements the parts of ssh.Session the chain touches; the
// embedded interface panics on anything else.
type fakeSession struct {
	ssh.Session
	ctx    *fakeContext
	user   string
	remote net.Addr
	pty    ssh.Pty
	hasPTY bool
	env    []string

	mu     sync.Mutex
	writes []string
	stderr bytes.Buffer
	exit   *int
}

func newFakeSession(ctx context.Context, ip string) *fakeSession {
	var remote net.Addr
	if ip != "" {
		remote = &net.TCPAddr{IP: net.ParseIP(ip), Port: 50022}
	}
	return &fakeSession{
		ctx:    &fakeContext{Context: ctx, values: map[any]any{}, remote: remote},
		user:   "guest",
		remote: remote,
		pty:    ssh.Pty{Term: "xterm-256color", Window: ssh.Window{Width: 100, Height: 30}},
		hasPTY: true,
	}
}

func (f *fakeSession) User() string             { return f.user }
func (f *fakeSession) RemoteAddr() net.Addr     { return f.remote }
func (f *fakeSession) Context() ssh.Context     { return f.ctx }
func (f *fakeSession) Environ() []string        { return f.env }
func (f *fakeSession) Command() []string        { return nil }
func (f *fakeSession) RawCommand() string       { return "" }
func (f *fakeSession) PublicKey() ssh.PublicKey { return nil }
func (f *fakeSession) Stderr() io.ReadWriter    { return &f.stderr }
func (f *fakeSession) Close() error             { return nil }
func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return f.pty, nil, f.hasPTY
}
func (f *fakeSession) Exit(code int) error {
	f.exit = &code
	return nil
}
func (f *fakeSession) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, string(p))
	return len(p), nil
}

func (f *fakeSession) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func compose(chain []Descriptor, h ssh.Handler) ssh.Handler {
	middleware := MiddlewareFromDescriptors(chain)
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

func TestDefaultChainOrder(t *testing.T) {
	t.Parallel()

	chain := DefaultChain(ChainOptions{Logger: quietLogger()})
	want := []string{"access-log", "rate-limit", "session-limit", "active-terminal", "session-metadata"}
	got := Names(chain)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("chain = %v, want %v", got, want)
	}
	for _, d := range chain {
		if d.Middleware == nil {
			t.Fatalf("descriptor %q has no middleware", d.Name)
		}
	}
}

func TestDefaultChainStoresMetadataBeforeHandler(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	chain := DefaultChain(ChainOptions{Logger: quietLogger(), Now: func() time.Time { return started }})
	s := newFakeSession(context.Background(), "198.51.100.14")

	called := false
	compose(chain, func(sess ssh.Session) {
		called = true
		info, ok := InfoFromSession(sess)
		if !ok {
			t.Fatal("expected session metadata before handler execution")
		}
		want := SessionInfo{
			User:         "guest",
			RemoteIP:     "198.51.100.14",
			ObserverHash: observerHash("198.51.100.14"),
			Term:         "xterm-256color",
			StartedAt:    started,
		}
		if info != want {
			t.Fatalf("info = %+v, want %+v", info, want)
		}
	})(s)

	if !called {
		t.Fatal("expected handler to run")
	}
}

func TestDefaultChainRejectsSessionsWithoutPTY(t *testing.T) {
	t.Parallel()

	s := newFakeSession(context.Background(), "198.51.100.15")
	s.hasPTY = false

	called := false
	compose(DefaultChain(ChainOptions{Logger: quietLogger()}), func(ssh.Session) { called = true })(s)

	if called {
		t.Fatal("handler ran without a PTY")
	}
	if s.exit == nil || *s.exit != 1 {
		t.Fatalf("exit = %v, want 1", s.exit)
	}
	if _, ok := InfoFromSession(s); ok {
		t.Fatal("metadata should not be stored for rejected sessions")
	}
}

func TestSessionTermFallsBackToEnviron(t *testing.T) {
	t.Parallel()

	s := newFakeSession(context.Background(), "198.51.100.16")
	s.pty = ssh.Pty{}
	s.env = []string{"LANG=C", "TERM=screen"}
	if got := sessionTerm(s); got != "screen" {
		t.Fatalf("sessionTerm = %q, want screen", got)
	}
}

func TestObserverHashDerivationCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "E3B0C44298FC"},
		{name: "trimmed", in: " 198.51.100.14 ", want: observerHash("198.51.100.14")},
		{name: "malformed", in: "not-an-addr", want: observerHash("not-an-addr")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := observerHash(tc.in)
			if got != tc.want || len(got) != 12 || strings.ToUpper(got) != got {
				t.Fatalf("observerHash(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
	if observerHash("198.51.100.14") == observerHash("198.51.100.15") {
		t.Fatal("distinct addresses share an observer hash")
	}
}
