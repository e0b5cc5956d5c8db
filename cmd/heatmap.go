package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/cli"
)

var heatmapCmd = &cobra.Command{
	Use:     "heatmap",
	Aliases: []string{"calendar"},
	Short:   "Contribution calendar for the year",
	RunE:    runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(_ *cobra.Command, _ []string) error {
	v, cfg, err := loadView(nil)
	if err != nil {
		return err
	}
	if printEmpty(v) {
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CONTRIBUTIONS  %d", v.Year)))
	fmt.Println()
	fmt.Print(cli.RenderHeatmap(v, cfg.Location()))
	fmt.Println()
	return nil
}
