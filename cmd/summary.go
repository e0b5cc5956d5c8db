package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline figures for the year",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	v, _, err := loadView(nil)
	if err != nil {
		return err
	}
	if printEmpty(v) {
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderSummary(v))
	fmt.Println()
	fmt.Print(cli.RenderTokens(v))
	fmt.Println()
	return nil
}
