package main

import (
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal page over SSH and the HTML page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := content.NewSource(a.cfg.ContentPath, a.logger)
			if err != nil {
				return err
			}

			chain := router.DefaultChain(router.ChainOptions{
				Logger:             a.logger,
				RateLimitPerMinute: a.cfg.RateLimitPerMinute,
				RateLimitBurst:     a.cfg.RateLimitBurst,
				MaxSessions:        a.cfg.MaxSessions,
			})
			runtime, err := server.New(a.cfg, src, chain, a.logger)
			if err != nil {
				return err
			}
			return runtime.Run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.String("ssh-host", "", "SSH listen host")
	f.Int("ssh-port", 0, "SSH listen port")
	f.String("host-key", "", "SSH host key path (created when missing)")
	f.Bool("http", true, "serve the HTML page")
	f.String("http-host", "", "HTTP listen host")
	f.Int("http-port", 0, "HTTP listen port")
	f.String("public-url", "", "external web address used for the CV link")
	f.Bool("watch", false, "reload the content file when it changes")
	return cmd
}
