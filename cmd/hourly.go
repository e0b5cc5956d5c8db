package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/cli"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Activity by hour of day and by season",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	v, cfg, err := loadView(nil)
	if err != nil {
		return err
	}
	if printEmpty(v) {
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ACTIVITY BY HOUR  %d (%s)", v.Year, cfg.General.Timezone)))
	fmt.Println()
	fmt.Print(cli.RenderHourly(v))
	fmt.Println()
	fmt.Print(cli.RenderSeasons(v))
	fmt.Println()
	return nil
}
