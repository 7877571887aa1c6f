package kgprofile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/serplens/kgprofile"
	"github.com/serplens/kgprofile/pkg/config"
	"github.com/serplens/kgprofile/pkg/kgsearch"
	"github.com/serplens/kgprofile/pkg/logger"
	"github.com/serplens/kgprofile/pkg/server"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the kgprofile HTTP server",
	Long: `Start the kgprofile HTTP server to provide REST API access to entity
search and profile URL derivation.

The server provides endpoints for:
- Searching entities and deriving Discover profile URLs
- Encoding a single MID
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost   string
	serverPort   int
	serverMode   string
	serverAPIKey string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")
	serverCmd.Flags().StringVar(&serverAPIKey, "api-key", "", "Knowledge Graph Search API key")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over config file and environment.
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}
	if serverAPIKey != "" {
		cfg.KGSearch.APIKey = serverAPIKey
	}

	if cfg.KGSearch.APIKey == "" {
		return errors.New("an API key is required; set --api-key, GOOGLE_API_KEY, or kgsearch.api_key in the config file")
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	client, err := kgsearch.NewClient(kgsearch.Config{
		APIKey:        cfg.KGSearch.APIKey,
		BaseURL:       cfg.KGSearch.BaseURL,
		Timeout:       cfg.KGSearch.TimeoutDuration(),
		RatePerSecond: cfg.KGSearch.RatePerSecond,
		RateBurst:     cfg.KGSearch.RateBurst,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	// The serving path always gets the breaker unless disabled, so a
	// broken upstream fails fast instead of tying up request handlers.
	var searcher kgsearch.Searcher = client
	if cfg.CircuitBreaker.Enabled {
		searcher = kgsearch.NewBreakerClient(client, cfg.CircuitBreaker, log, "kgsearch")
	}

	finder := kgprofile.New(searcher, log)

	srv := server.New(cfg, finder, log)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
