package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kyoungmook/claude-dashboard/internal/web"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, closeStore, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := web.New(cfg, svc)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	if !flagQuiet {
		fmt.Printf("  Dashboard on http://%s\n", cfg.Server.Addr)
		fmt.Printf("  Reading transcripts from %s\n", cfg.ClaudeDir())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
