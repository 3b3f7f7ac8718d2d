package cmd

import (
	"fmt"
	"strconv"

	"github.com/kyoungmook/claude-dashboard/internal/cli"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show tool usage frequency across all sessions",
	RunE:  runToolsCmd,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runToolsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeStore, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	usage := svc.ToolUsage()
	if len(usage) == 0 {
		fmt.Println("\n  No tool calls found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TOOL USAGE"))
	fmt.Println()

	rows := make([][]string, 0, len(usage))
	for _, u := range usage {
		rows = append(rows, []string{
			u.Name,
			cli.FormatNumber(int64(u.CallCount)),
			strconv.Itoa(u.SessionCount),
			strconv.FormatFloat(u.AvgPerSession, 'f', 1, 64),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Tool", "Calls", "Sessions", "Avg/session"},
		Rows:    rows,
	}))

	return nil
}
