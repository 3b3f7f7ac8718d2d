package cmd

import (
	"fmt"
	"os"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/session"
	"github.com/kyoungmook/claude-dashboard/internal/stats"
	"github.com/kyoungmook/claude-dashboard/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagAddr    string
	flagNoStore bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "claude-dashboard",
	Short: "Local analytics dashboard for Claude Code transcripts",
	Long:  "Read the JSONL transcripts under ~/.claude and serve usage, cost, agent, and live-activity views.",
	RunE:  runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Claude data directory (default ~/.claude)")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "HTTP listen address (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Skip the SQLite session cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads config.toml and layers the command-line flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.ClaudeDir = flagDataDir
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagNoStore {
		cfg.Cache.UseStore = false
	}
	config.ApplyPricingOverrides(cfg.Pricing.Overrides)
	return cfg, nil
}

// newService builds the shared stats service used by every command. The
// returned closer releases the SQLite store when one was opened.
func newService(cfg config.Config) (*stats.Service, func(), error) {
	var st *store.Store
	closer := func() {}

	if cfg.Cache.UseStore {
		opened, err := store.Open(store.DefaultPath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Session cache unavailable, doing full parse: %v\n", err)
			}
		} else {
			st = opened
			closer = func() { _ = opened.Close() }
		}
	}

	corpus := session.NewCorpus(cfg.ClaudeDir(), st)
	return stats.New(cfg, corpus), closer, nil
}
