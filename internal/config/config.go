package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. PORTFOLIO_SSH_PORT.
const EnvPrefix = "PORTFOLIO"

// Keys understood by Load. Nested keys map to env vars by replacing dots
// with underscores.
const (
	KeySSHHost            = "ssh.host"
	KeySSHPort            = "ssh.port"
	KeyHostKeyPath        = "ssh.host_key_path"
	KeyIdleTimeout        = "ssh.idle_timeout"
	KeyMaxTimeout         = "ssh.max_timeout"
	KeyMaxSessions        = "ssh.max_sessions"
	KeyRateLimitPerMinute = "ssh.rate_limit_per_minute"
	KeyRateLimitBurst     = "ssh.rate_limit_burst"
	KeyHTTPEnabled        = "http.enabled"
	KeyHTTPHost           = "http.host"
	KeyHTTPPort           = "http.port"
	KeyPublicURL          = "http.public_url"
	KeyContentPath        = "content.path"
	KeyContentWatch       = "content.watch"
	KeyAssetsDir          = "content.assets_dir"
	KeyLogLevel           = "log.level"
)

const (
	defaultHost               = "0.0.0.0"
	defaultSSHPort            = 2222
	defaultHTTPPort           = 8080
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 10 * time.Minute
	defaultMaxTimeout         = time.Hour
	defaultMaxSessions        = 32
	defaultRateLimitPerMinute = 30
	defaultRateLimitBurst     = 10
	defaultAssetsDir          = "public"
	maximumConfiguredSessions = 1024
)

// Config captures startup settings for the portfolio runtime.
type Config struct {
	SSHHost            string
	SSHPort            int
	HostKeyPath        string
	IdleTimeout        time.Duration
	MaxTimeout         time.Duration
	MaxSessions        int
	RateLimitPerMinute int
	RateLimitBurst     int

	HTTPEnabled bool
	HTTPHost    string
	HTTPPort    int
	// PublicURL is the externally visible web address; the terminal page
	// links the CV through it when set.
	PublicURL string

	// ContentPath is a YAML portfolio file. Empty means the bundled content.
	ContentPath  string
	WatchContent bool
	AssetsDir    string
	LogLevel     log.Level
}

// SSHAddress is host:port for the SSH listener.
func (c Config) SSHAddress() string {
	return fmt.Sprintf("%s:%d", c.SSHHost, c.SSHPort)
}

// HTTPAddress is host:port for the HTTP listener.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// CVURL is the absolute CV download link, or "" without a PublicURL.
func (c Config) CVURL() string {
	if c.PublicURL == "" || !c.HTTPEnabled {
		return ""
	}
	return strings.TrimRight(c.PublicURL, "/") + "/cv"
}

// New returns a viper instance with defaults and environment binding set.
// When configFile is non-empty it is read as well.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeySSHHost, defaultHost)
	v.SetDefault(KeySSHPort, defaultSSHPort)
	v.SetDefault(KeyHostKeyPath, defaultHostKeyPath)
	v.SetDefault(KeyIdleTimeout, defaultIdleTimeout.String())
	v.SetDefault(KeyMaxTimeout, defaultMaxTimeout.String())
	v.SetDefault(KeyMaxSessions, defaultMaxSessions)
	v.SetDefault(KeyRateLimitPerMinute, defaultRateLimitPerMinute)
	v.SetDefault(KeyRateLimitBurst, defaultRateLimitBurst)
	v.SetDefault(KeyHTTPEnabled, true)
	v.SetDefault(KeyHTTPHost, defaultHost)
	v.SetDefault(KeyHTTPPort, defaultHTTPPort)
	v.SetDefault(KeyPublicURL, "")
	v.SetDefault(KeyContentPath, "")
	v.SetDefault(KeyContentWatch, false)
	v.SetDefault(KeyAssetsDir, defaultAssetsDir)
	v.SetDefault(KeyLogLevel, "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// LoadFromEnv loads configuration from defaults and PORTFOLIO_* variables.
func LoadFromEnv() (Config, error) {
	v, err := New("")
	if err != nil {
		return Config{}, err
	}
	return Load(v)
}

// Load validates the settings held by v. Every problem is reported.
func Load(v *viper.Viper) (Config, error) {
	r := reader{v: v}

	cfg := Config{
		SSHHost:            r.host(KeySSHHost),
		SSHPort:            r.integer(KeySSHPort, 1, 65535),
		HostKeyPath:        r.hostKeyPath(),
		IdleTimeout:        r.duration(KeyIdleTimeout),
		MaxTimeout:         r.duration(KeyMaxTimeout),
		MaxSessions:        r.integer(KeyMaxSessions, 1, maximumConfiguredSessions),
		RateLimitPerMinute: r.integer(KeyRateLimitPerMinute, 1, 10000),
		RateLimitBurst:     r.integer(KeyRateLimitBurst, 1, 1000),
		HTTPEnabled:        r.boolean(KeyHTTPEnabled),
		HTTPHost:           r.host(KeyHTTPHost),
		HTTPPort:           r.integer(KeyHTTPPort, 1, 65535),
		PublicURL:          strings.TrimSpace(v.GetString(KeyPublicURL)),
		ContentPath:        strings.TrimSpace(v.GetString(KeyContentPath)),
		WatchContent:       r.boolean(KeyContentWatch),
		AssetsDir:          strings.TrimSpace(v.GetString(KeyAssetsDir)),
		LogLevel:           r.level(),
	}
	if cfg.WatchContent && cfg.ContentPath == "" {
		r.fail("%s requires %s", EnvName(KeyContentWatch), EnvName(KeyContentPath))
	}
	if cfg.SSHPort != 0 && cfg.HTTPEnabled && cfg.SSHPort == cfg.HTTPPort && cfg.SSHHost == cfg.HTTPHost {
		r.fail("%s and %s must differ", EnvName(KeySSHPort), EnvName(KeyHTTPPort))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvName is the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

type reader struct {
	v    *viper.Viper
	errs []error
}

func (r *reader) fail(format string, args ...any) {
	r.errs = append(r.errs, fmt.Errorf(format, args...))
}

func (r *reader) host(key string) string {
	raw := r.v.GetString(key)
	if strings.TrimSpace(raw) == "" {
		r.fail("%s must not be empty", EnvName(key))
	}
	return raw
}

func (r *reader) hostKeyPath() string {
	raw := r.v.GetString(KeyHostKeyPath)
	if strings.TrimSpace(raw) == "" {
		r.fail("%s must not be empty", EnvName(KeyHostKeyPath))
		return ""
	}
	clean := filepath.Clean(raw)
	if clean == "." {
		r.fail("%s must not resolve to current directory", EnvName(KeyHostKeyPath))
	}
	return clean
}

func (r *reader) integer(key string, min, max int) int {
	raw := strings.TrimSpace(r.v.GetString(key))
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		r.fail("%s must be an integer: %w", EnvName(key), err)
		return 0
	}
	if parsed < min || parsed > max {
		r.fail("%s must be between %d and %d", EnvName(key), min, max)
		return 0
	}
	return parsed
}

func (r *reader) duration(key string) time.Duration {
	raw := strings.TrimSpace(r.v.GetString(key))
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		r.fail("%s must be a valid duration: %w", EnvName(key), err)
		return 0
	}
	if parsed <= 0 {
		r.fail("%s must be greater than 0", EnvName(key))
		return 0
	}
	return parsed
}

func (r *reader) boolean(key string) bool {
	raw := strings.TrimSpace(r.v.GetString(key))
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail("%s must be a boolean: %w", EnvName(key), err)
		return false
	}
	return parsed
}

func (r *reader) level() log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(r.v.GetString(KeyLogLevel)))
	if err != nil {
		r.fail("%s: %w", EnvName(KeyLogLevel), err)
		return log.InfoLevel
	}
	return lvl
}
