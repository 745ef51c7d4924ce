// livetail connects to the dashboard backend's live stream and tails events
// to the console.
// Usage: go run ./cmd/livetail --config configs/livefeed.yaml
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantdash/livefeed/internal/config"
	"github.com/quantdash/livefeed/internal/event"
	"github.com/quantdash/livefeed/internal/journal"
	"github.com/quantdash/livefeed/internal/live"
	"github.com/quantdash/livefeed/internal/session"
	"github.com/quantdash/livefeed/internal/store"
	"github.com/quantdash/livefeed/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/livefeed.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "print full envelope JSON")
	flag.Parse()

	// Load config
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	logger.Info("livetail starting", "version", version.String())

	url, err := live.DeriveURL(cfg.Server.Origin)
	if err != nil {
		logger.Error("failed to derive live URL", "origin", cfg.Server.Origin, "error", err)
		os.Exit(1)
	}
	logger.Info("live endpoint resolved", "url", url)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	st := store.New()
	mgr := session.NewManager(func() live.Client {
		return live.NewClient(live.Config{
			URL:                  url,
			HeartbeatInterval:    cfg.Live.HeartbeatInterval,
			MaxReconnectAttempts: cfg.Live.MaxReconnectAttempts,
			ReconnectBaseDelay:   cfg.Live.ReconnectBaseDelay,
			ReconnectMaxDelay:    cfg.Live.ReconnectMaxDelay,
		}, logger)
	}, st, logger)

	// Print every envelope and status transition this process observes.
	binding := mgr.Bind(func(env event.Envelope) {
		if *verbose {
			data, _ := json.Marshal(env)
			fmt.Println(string(data))
			return
		}
		logger.Info("event", "type", env.Type, "timestamp", env.Timestamp)
	}, func(s live.Status) {
		logger.Info("connection status changed", "status", s.String())
	})
	defer binding.Close()

	// The CLI itself is the trusted session.
	mgr.SetAuthenticated(true)

	// Optional event journal
	var writer *journal.Writer
	if cfg.Journal.Enabled {
		pool, err := journal.Connect(ctx, cfg.Journal.Database)
		if err != nil {
			logger.Error("failed to connect journal database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		writer = journal.NewWriter(journal.Config{
			BatchSize:     cfg.Journal.BatchSize,
			FlushInterval: cfg.Journal.FlushInterval,
		}, pool, logger)
		if err := writer.Start(ctx); err != nil {
			logger.Error("failed to start journal", "error", err)
			os.Exit(1)
		}
		mgr.Client().SubscribeMessage(writer.Record)
	}

	<-ctx.Done()

	mgr.SetAuthenticated(false)

	if writer != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := writer.Stop(stopCtx); err != nil {
			logger.Warn("journal stop failed", "error", err)
		}
		stats := writer.Stats()
		logger.Info("journal summary", "inserts", stats.Inserts, "flushes", stats.Flushes, "errors", stats.Errors)
	}

	logger.Info("livetail stopped",
		"events_retained", len(st.Events()),
		"last_status", st.Status().String(),
	)
}

// logLevel maps the config level string to a slog level; unknown is info.
func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
