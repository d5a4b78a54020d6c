// cmd/quickcalories/serve.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quickcalories/internal/config"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cfg.Gateway.URL == "" {
			log.Println("No gateway URL configured; estimation tools are disabled")
		}

		a, err := openApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		errCh := make(chan error, 1)
		go func() {
			if err := a.server.Start(cmd.Context()); err != nil {
				errCh <- err
			}
		}()

		select {
		case <-sigCh:
			log.Println("Received shutdown signal")
		case err := <-errCh:
			log.Printf("Server error: %v", err)
			return err
		}

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.server.Stop(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		return nil
	},
}

func init() {
	defaults := config.Default()
	serveCmd.Flags().StringVar(&serveHost, "host", defaults.Server.Host, "Host address")
	serveCmd.Flags().IntVar(&servePort, "port", defaults.Server.Port, "Port for HTTP transport")
	rootCmd.AddCommand(serveCmd)
}
