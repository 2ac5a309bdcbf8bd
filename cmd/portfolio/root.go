package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        config.Config
	logger     *log.Logger
}

// flagKeys maps command-line flags onto config keys; a flag set on the
// command line wins over the environment and the config file.
var flagKeys = map[string]string{
	"content":    config.KeyContentPath,
	"assets":     config.KeyAssetsDir,
	"log-level":  config.KeyLogLevel,
	"ssh-host":   config.KeySSHHost,
	"ssh-port":   config.KeySSHPort,
	"http-host":  config.KeyHTTPHost,
	"http-port":  config.KeyHTTPPort,
	"http":       config.KeyHTTPEnabled,
	"public-url": config.KeyPublicURL,
	"watch":      config.KeyContentWatch,
	"host-key":   config.KeyHostKeyPath,
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Semini Thambavita's portfolio over SSH and HTTP",
		Long: `portfolio serves a single-page portfolio two ways: a terminal page for
every SSH session and an HTML page over HTTP. Without a subcommand it serves.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file")
	root.PersistentFlags().String("content", "", "portfolio YAML file (default: bundled content)")
	root.PersistentFlags().String("assets", "", "directory served under /assets")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	serve := newServeCmd(a)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newRenderCmd(a), newExportCmd(a))
	return root
}

func (a *app) initialize(cmd *cobra.Command) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return fmt.Errorf("bind flags: %w", bindErr)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.v, a.cfg = v, cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if a.configFile != "" {
		a.logger.Debug("config loaded", "event", "config_loaded", "file", v.ConfigFileUsed())
	}
	return nil
}

func (a *app) portfolio() (*content.Portfolio, error) {
	return content.LoadFile(a.cfg.ContentPath)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
}
