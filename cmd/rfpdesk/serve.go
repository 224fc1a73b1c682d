package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rfpdesk/internal/config"
	"rfpdesk/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		devMode bool
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				log.Printf("failed to load config, using defaults: %v", err)
				cfg = config.DefaultConfig()
			}

			if port > 0 {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if dataDir != "" {
				cfg.Data.DataDir = dataDir
			}

			srv := server.NewServer(cfg)
			defer srv.Close()

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			errCh := make(chan error, 1)
			go func() {
				fmt.Printf("rfpdesk listening on %s\n", addr)
				errCh <- srv.Run(addr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
				fmt.Println("\nshutting down")
				return nil
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Server port (overrides config.toml)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Development mode")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config.toml)")

	return cmd
}
