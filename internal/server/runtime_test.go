package server

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/theme"
)

type fakeSessionContext struct {
	context.Context
	mu     sync.Mutex
	values map[any]any
	remote net.Addr
}

func (f *fakeSessionContext) Lock()                         { f.mu.Lock() }
func (f *fakeSessionContext) Unlock()                       { f.mu.Unlock() }
func (f *fakeSessionContext) User() string                  { return "guest" }
func (f *fakeSessionContext) SessionID() string             { return "session-runtime" }
func (f *fakeSessionContext) ClientVersion() string         { return "ssh-test-client" }
func (f *fakeSessionContext) ServerVersion() string         { return "ssh-test-server" }
func (f *fakeSessionContext) RemoteAddr() net.Addr          { return f.remote }
func (f *fakeSessionContext) LocalAddr() net.Addr           { return f.remote }
func (f *fakeSessionContext) Permissions() *ssh.Permissions { return &ssh.Permissions{} }
func (f *fakeSessionContext) SetValue(key, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}
func (f *fakeSessionContext) Value(key any) any {
	f.mu.Lock()
	v, ok := f.values[key]
	f.mu.Unlock()
	if ok {
		return v
	}
	return f.Context.Value(key)
}

type fakeSession struct {
	ssh.Session
	ctx *fakeSessionContext
	env []string
	pty ssh.Pty
}

func newFakeSession(ctx context.Context, env ...string) *fakeSession {
	remote := &net.TCPAddr{IP: net.ParseIP("203.0.113.60"), Port: 2022}
	return &fakeSession{
		ctx: &fakeSessionContext{Context: ctx, values: map[any]any{}, remote: remote},
		env: env,
		pty: ssh.Pty{Term: "xterm-256color", Window: ssh.Window{Width: 120, Height: 40}},
	}
}

func (f *fakeSession) Context() ssh.Context { return f.ctx }
func (f *fakeSession) Environ() []string    { return f.env }
func (f *fakeSession) User() string         { return "guest" }
func (f *fakeSession) RemoteAddr() net.Addr { return f.ctx.remote }
func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return f.pty, nil, true
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		SSHHost:            "127.0.0.1",
		SSHPort:            2222,
		HostKeyPath:        filepath.Join(t.TempDir(), "host_ed25519"),
		IdleTimeout:        time.Minute,
		MaxTimeout:         time.Hour,
		MaxSessions:        4,
		RateLimitPerMinute: 10,
		RateLimitBurst:     2,
		HTTPEnabled:        true,
		HTTPHost:           "127.0.0.1",
		HTTPPort:           8080,
		PublicURL:          "https://semini.example",
	}
}

func testRuntime(t *testing.T, cfg config.Config) *Runtime {
	t.Helper()
	p, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	logger := log.New(io.Discard)
	chain := router.DefaultChain(router.ChainOptions{
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		MaxSessions:        cfg.MaxSessions,
	})
	runtime, err := New(cfg, content.StaticSource(p), chain, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return runtime
}

func TestNewRuntimeStartupPipeline(t *testing.T) {
	t.Parallel()

	runtime := testRuntime(t, testConfig(t))

	if got := runtime.Address(); got != "127.0.0.1:2222" {
		t.Fatalf("Address() = %q, want %q", got, "127.0.0.1:2222")
	}
	if got := runtime.HTTPAddress(); got != "127.0.0.1:8080" {
		t.Fatalf("HTTPAddress() = %q", got)
	}

	want := []string{"access-log", "rate-limit", "session-limit", "active-terminal", "session-metadata"}
	got := runtime.MiddlewareIDs()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("middleware = %v, want %v", got, want)
	}

	got[0] = "mutated"
	if runtime.MiddlewareIDs()[0] != "access-log" {
		t.Fatal("MiddlewareIDs() exposed internal state")
	}
}

func TestNewRuntimeWithoutHTTP(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HTTPEnabled = false
	if got := testRuntime(t, cfg).HTTPAddress(); got != "" {
		t.Fatalf("HTTPAddress() = %q, want empty", got)
	}
}

func TestNewRuntimeRequiresSource(t *testing.T) {
	t.Parallel()

	if _, err := New(testConfig(t), nil, nil, nil); err == nil {
		t.Fatal("New() expected error without a content source")
	}
}

func TestSessionModelMarksRendererFromEnviron(t *testing.T) {
	t.Parallel()

	runtime := testRuntime(t, testConfig(t))
	tests := []struct {
		name string
		env  []string
		want theme.Mode
	}{
		{name: "no hint", want: theme.ModeLight},
		{name: "explicit dark", env: []string{"PORTFOLIO_THEME=dark"}, want: theme.ModeDark},
		{name: "dark COLORFGBG", env: []string{"COLORFGBG=15;0"}, want: theme.ModeDark},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			renderer := lipgloss.NewRenderer(io.Discard)
			model := runtime.sessionModel(newFakeSession(context.Background(), tt.env...), renderer)
			if model.Mode() != tt.want {
				t.Fatalf("Mode() = %s, want %s", model.Mode(), tt.want)
			}
			if renderer.HasDarkBackground() != (tt.want == theme.ModeDark) {
				t.Fatalf("renderer dark background = %v", renderer.HasDarkBackground())
			}
		})
	}
}

func TestSessionModelUnmountsWhenSessionEnds(t *testing.T) {
	t.Parallel()

	runtime := testRuntime(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	model := runtime.sessionModel(newFakeSession(ctx), lipgloss.NewRenderer(io.Discard))
	model.Init()
	if !model.Alive() {
		t.Fatal("model should be alive after Init")
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for model.Alive() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if model.Alive() {
		t.Fatal("model still alive after the session ended")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SSHPort = 0
	cfg.HTTPPort = 0
	runtime := testRuntime(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runtime.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}
