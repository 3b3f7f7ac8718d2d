package cmd

import (
	"fmt"

	"github.com/kyoungmook/claude-dashboard/internal/cli"

	"github.com/spf13/cobra"
)

var (
	sessionsLimit   int
	sessionsProject string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sessions",
	RunE:  runSessionsCmd,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show")
	sessionsCmd.Flags().StringVarP(&sessionsProject, "project", "p", "", "Filter to project (substring match)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeStore, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := svc.Sessions()
	if sessionsProject != "" {
		sessions = svc.SearchSessions(sessionsProject)
	}
	if len(sessions) == 0 {
		fmt.Println("\n  No sessions found.")
		return nil
	}
	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[:sessionsLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  showing %d", len(sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			shortTimestamp(s.LastTimestamp),
			truncate(s.ProjectName, 18),
			truncate(s.SessionID, 10),
			fmt.Sprintf("%d", s.MessageCount),
			cli.FormatTokens(s.TotalUsage.Total()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Last activity", "Project", "Session", "Msgs", "Tokens"},
		Rows:    rows,
	}))

	return nil
}

// shortTimestamp trims an ISO timestamp down to "2006-01-02 15:04".
func shortTimestamp(ts string) string {
	if len(ts) >= 16 {
		return ts[:10] + " " + ts[11:16]
	}
	return ts
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
