package web

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

// ExportOptions configure a static export.
type ExportOptions struct {
	OutDir    string
	AssetsDir string
	Mode      theme.Mode
	Year      int
}

// Export writes a static copy of the page: light.html, dark.html, an
// index.html in the requested mode and the asset tree under assets/.
func Export(p *content.Portfolio, opts ExportOptions) error {
	if opts.OutDir == "" {
		return fmt.Errorf("export: output directory is required")
	}
	if opts.Mode == "" {
		opts.Mode = theme.ModeLight
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	// Asset hrefs are relative so the export also works from file://.
	pageOpts := PageOptions{
		Year:       opts.Year,
		ToggleHref: func(m theme.Mode) string { return string(m) + ".html" },
		AssetHref:  func(path string) string { return strings.TrimPrefix(path, "/") },
	}

	for _, m := range []theme.Mode{theme.ModeLight, theme.ModeDark} {
		pref := theme.PreferLight
		if m == theme.ModeDark {
			pref = theme.PreferDark
		}
		root := &Root{}
		page, err := BuildPage(p, theme.NewHolder(pref, root), root, pageOpts)
		if err != nil {
			return fmt.Errorf("export %s: %w", m, err)
		}
		names := []string{string(m) + ".html"}
		if m == opts.Mode {
			names = append(names, "index.html")
		}
		for _, name := range names {
			if err := writePage(filepath.Join(opts.OutDir, name), page); err != nil {
				return err
			}
		}
	}

	if opts.AssetsDir == "" {
		return nil
	}
	if _, err := os.Stat(opts.AssetsDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return copyTree(opts.AssetsDir, filepath.Join(opts.OutDir, "assets"))
}

func writePage(file string, page Page) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := Render(f, page); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", filepath.Base(file), err)
	}
	return f.Close()
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
