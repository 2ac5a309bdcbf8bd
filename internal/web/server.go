package web

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

const (
	assetPrefix = "/assets/"
	// colorSchemeHint is the client hint carrying prefers-color-scheme.
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// Options configure the HTTP surface.
type Options struct {
	// AssetsDir backs /assets/*. Empty disables asset and CV serving.
	AssetsDir string
	Logger    *log.Logger
	Now       func() time.Time
}

// NewHandler returns the gin engine serving the page for src.
func NewHandler(src *content.Source, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger))

	h := &handler{src: src, opts: opts}
	r.GET("/", h.page)
	r.HEAD("/", h.page)
	r.GET("/cv", h.cv)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if opts.AssetsDir != "" {
		r.Static("/assets", opts.AssetsDir)
	}
	return r
}

type handler struct {
	src  *content.Source
	opts Options
}

func (h *handler) page(c *gin.Context) {
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Critical-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint)

	p := h.src.Current()
	root := &Root{}
	holder := theme.NewHolder(PreferenceFromRequest(c.Request), root)

	cvHref := ""
	if !p.Hero.CV.IsZero() {
		cvHref = "/cv"
	}
	page, err := BuildPage(p, holder, root, PageOptions{Year: h.opts.Now().Year(), CVHref: cvHref})
	if err != nil {
		h.opts.Logger.Error("page build failed", "event", "http_render_failed", "err", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		h.opts.Logger.Error("page render failed", "event", "http_render_failed", "err", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *handler) cv(c *gin.Context) {
	cv := h.src.Current().Hero.CV
	file, ok := h.assetFile(cv.Path)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.FileAttachment(file, path.Base(cv.Path))
}

// assetFile maps an /assets/ URL path onto AssetsDir.
func (h *handler) assetFile(urlPath string) (string, bool) {
	if h.opts.AssetsDir == "" || !strings.HasPrefix(urlPath, assetPrefix) {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(urlPath, assetPrefix))
	file := filepath.Join(h.opts.AssetsDir, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}

// PreferenceFromRequest reads the viewer's color-scheme preference: an
// explicit ?theme= choice first, then the client hint.
func PreferenceFromRequest(r *http.Request) theme.Preference {
	if p := theme.ParsePreference(r.URL.Query().Get("theme")); p != theme.PreferNone {
		return p
	}
	return theme.ParsePreference(strings.Trim(r.Header.Get(colorSchemeHint), `"`))
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info("http request",
			"event", "http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(started).Milliseconds(),
			"remote", c.ClientIP(),
		)
	}
}
