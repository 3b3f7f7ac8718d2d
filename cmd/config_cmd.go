package cmd

import (
	"fmt"

	"github.com/kyoungmook/claude-dashboard/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.toml",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	fmt.Printf("  Claude dir:  %s\n", cfg.ClaudeDir())
	fmt.Printf("  Listen addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  Live poll:   %ds\n", cfg.Server.LivePollIntervalSec)
	fmt.Printf("  Session poll: %ds\n", cfg.Server.SessionPollIntervalSec)
	fmt.Printf("  TTLs: sessions %ds, overview %ds, agents %ds, pixel %ds\n",
		cfg.Cache.SessionsTTLSec, cfg.Cache.OverviewTTLSec,
		cfg.Cache.AgentsTTLSec, cfg.Cache.PixelTTLSec)
	fmt.Printf("  SQLite store: %v\n", cfg.Cache.UseStore)
	if len(cfg.Pricing.Overrides) > 0 {
		fmt.Printf("  Pricing overrides: %d model(s)\n", len(cfg.Pricing.Overrides))
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}
