package cmd

import (
	"fmt"
	"strconv"

	"github.com/kyoungmook/claude-dashboard/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print an overview of usage, cost, and model mix",
	RunE:  runSummaryCmd,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummaryCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeStore, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ov := svc.Overview()

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLAUDE DASHBOARD  Overview"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Sessions", cli.FormatNumber(int64(ov.TotalSessions))},
			{"Messages", cli.FormatNumber(int64(ov.TotalMessages))},
			{"Tool calls", cli.FormatNumber(int64(ov.TotalToolCalls))},
			{"Active days", strconv.Itoa(ov.ActiveDays)},
			{"Est. cost", cli.FormatCost(ov.TotalCostUSD)},
		},
	}))

	if len(ov.ModelUsage) > 0 {
		rows := make([][]string, 0, len(ov.ModelUsage))
		for _, m := range ov.ModelUsage {
			rows = append(rows, []string{
				m.DisplayName,
				cli.FormatTokens(m.InputTokens),
				cli.FormatTokens(m.OutputTokens),
				cli.FormatTokens(m.CacheReadInputTokens),
				cli.FormatCost(m.CostUSD),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By model",
			Headers: []string{"Model", "Input", "Output", "Cache read", "Cost"},
			Rows:    rows,
		}))
	}

	if ov.LongestSession.SessionID != "" {
		fmt.Printf("\n  Longest session: %s (%s, %s messages)\n",
			ov.LongestSession.SessionID,
			cli.FormatDuration(int64(ov.LongestSession.DurationHours*3600)),
			cli.FormatNumber(int64(ov.LongestSession.MessageCount)),
		)
	}

	return nil
}
