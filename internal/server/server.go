package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/tui"
	"portfolio-terminal/internal/web"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

// Runtime wires config, content, the middleware chain, the SSH page and the
// HTTP page as a testable unit.
type Runtime struct {
	cfg           config.Config
	source        *content.Source
	logger        *log.Logger
	middlewareIDs []string
	ssh           *ssh.Server
	http          *http.Server
}

// New builds the SSH server (and the HTTP server when enabled). Nothing
// listens until Run.
func New(cfg config.Config, src *content.Source, chain []router.Descriptor, logger *log.Logger) (*Runtime, error) {
	if src == nil {
		return nil, errors.New("server: content source is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runtime{cfg: cfg, source: src, logger: logger, middlewareIDs: router.Names(chain)}

	// wish applies middleware outside-in from the end of the list, so the
	// bubbletea handler goes first and the chain is reversed behind it.
	middleware := []wish.Middleware{bm.Middleware(r.teaHandler)}
	execution := router.MiddlewareFromDescriptors(chain)
	slices.Reverse(execution)
	middleware = append(middleware, execution...)

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddress()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMaxTimeout(cfg.MaxTimeout),
		wish.WithMiddleware(middleware...),
	)
	if err != nil {
		return nil, fmt.Errorf("build ssh server: %w", err)
	}
	r.ssh = sshServer

	if cfg.HTTPEnabled {
		r.http = &http.Server{
			Addr: cfg.HTTPAddress(),
			Handler: web.NewHandler(src, web.Options{
				AssetsDir: cfg.AssetsDir,
				Logger:    logger,
			}),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       time.Minute,
		}
	}
	return r, nil
}

func (r *Runtime) MiddlewareIDs() []string {
	out := make([]string, len(r.middlewareIDs))
	copy(out, r.middlewareIDs)
	return out
}

func (r *Runtime) Address() string {
	return r.ssh.Addr
}

// HTTPAddress is "" when the web page is disabled.
func (r *Runtime) HTTPAddress() string {
	if r.http == nil {
		return ""
	}
	return r.http.Addr
}

// Run serves until ctx ends or SIGINT/SIGTERM arrives, then shuts every
// listener down.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r.logger.Info("starting",
		"event", "startup",
		"version", Version,
		"ssh", r.Address(),
		"http", r.HTTPAddress(),
		"middleware", r.middlewareIDs,
		"host_key_path", r.cfg.HostKeyPath,
		"idle_timeout", r.cfg.IdleTimeout,
		"max_sessions", r.cfg.MaxSessions,
		"content", contentLabel(r.cfg.ContentPath),
		"watch", r.cfg.WatchContent,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.ssh.ListenAndServe()
		if err == nil || errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	})
	if r.http != nil {
		g.Go(func() error {
			err := r.http.ListenAndServe()
			if err == nil || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("http: %w", err)
		})
	}
	if r.cfg.WatchContent {
		g.Go(func() error { return r.source.Watch(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info("shutting down", "event", "shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		errs := []error{ignoreClosed(r.ssh.Shutdown(shutdownCtx))}
		if r.http != nil {
			errs = append(errs, ignoreClosed(r.http.Shutdown(shutdownCtx)))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}

// teaHandler starts one page per SSH session. The session's renderer is the
// root the theme holder marks.
func (r *Runtime) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	model := r.sessionModel(s, bm.MakeRenderer(s))
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func (r *Runtime) sessionModel(s ssh.Session, renderer *lipgloss.Renderer) tui.Model {
	pty, _, _ := s.Pty()
	holder := theme.NewHolder(theme.DetectPreference(s.Environ()), tui.MarkRenderer(renderer))

	model := tui.NewModel(r.source.Current(), tui.Options{
		Holder:   holder,
		Renderer: renderer,
		Theme:    theme.OptionsFromEnv(pty.Term),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		CVURL:    r.cfg.CVURL(),
	})
	context.AfterFunc(s.Context(), model.Unmount)

	if info, ok := router.InfoFromSession(s); ok {
		r.logger.Debug("page mounted", "event", "page_mount", "observer", info.ObserverHash, "mode", holder.Mode())
	}
	return model
}

func ignoreClosed(err error) error {
	if err == nil || errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func contentLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
