package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/export"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagExportTheme  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the dashboard as a PNG image or HTML page",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", export.FormatPNG, "Export format: png or html")
	exportCmd.Flags().StringVar(&flagExportOutput, "output", ".", "Output file or directory")
	exportCmd.Flags().StringVar(&flagExportTheme, "theme", "", "Page theme (default: appearance.web_theme)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	if flagExportFormat != export.FormatPNG && flagExportFormat != export.FormatHTML {
		return fmt.Errorf("unsupported export format %q (want png or html)", flagExportFormat)
	}

	v, cfg, err := loadView(nil)
	if err != nil {
		return err
	}

	name := flagExportTheme
	if name == "" {
		name = cfg.Appearance.WebTheme
	}
	t, ok := theme.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}

	path := flagExportOutput
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, export.Filename(time.Now(), cfg.ExportLocation(), flagExportFormat))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := export.Write(f, flagExportFormat, v, t, cfg.Location()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("  Saved %s\n", path)
	return nil
}
