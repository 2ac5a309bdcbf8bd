package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/web"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		out       string
		themeFlag string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the HTML page and its assets to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			mode, err := theme.ParseMode(themeFlag)
			if err != nil {
				return err
			}
			p, err := a.portfolio()
			if err != nil {
				return err
			}

			if err := web.Export(p, web.ExportOptions{
				OutDir:    out,
				AssetsDir: a.cfg.AssetsDir,
				Mode:      mode,
				Year:      time.Now().Year(),
			}); err != nil {
				return err
			}
			a.logger.Info("site exported", "event", "export", "out", out, "mode", mode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&themeFlag, "theme", string(theme.ModeLight), "mode of index.html: light or dark")
	return cmd
}
