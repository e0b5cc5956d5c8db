package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
)

var flagTopN int

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Largest conversation topics",
	RunE:  runTopics,
}

func init() {
	topicsCmd.Flags().IntVarP(&flagTopN, "limit", "l", dashboard.DefaultTopTopics, "Number of topics to show")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(_ *cobra.Command, _ []string) error {
	v, _, err := loadView(func(o *dashboard.Options) { o.TopTopics = flagTopN })
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TOPICS"))
	fmt.Println()
	fmt.Print(cli.RenderTopics(v))
	fmt.Println()
	return nil
}
