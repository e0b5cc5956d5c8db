package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which artifacts are present and how fresh they are",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	arts, cleanup, err := openArtifacts(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rows := make([][]string, 0, 5)
	missing := 0
	for _, fi := range arts.Inventory() {
		if fi.ModTime.IsZero() {
			missing++
			rows = append(rows, []string{fi.Name, "missing", "", ""})
			continue
		}
		rows = append(rows, []string{
			fi.Name,
			"ok",
			humanize.Bytes(uint64(max(fi.Size, 0))),
			humanize.Time(fi.ModTime),
		})
	}

	fmt.Println()
	fmt.Printf("  Artifact directory: %s\n\n", cfg.General.OutDir)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Artifacts",
		Headers: []string{"File", "Status", "Size", "Modified"},
		Rows:    rows,
	}))
	if missing > 0 {
		fmt.Printf("\n  %d of %d artifacts missing; the matching dashboard sections will be empty.\n", missing, len(rows))
	}
	fmt.Println()
	return nil
}
