package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/lift-view/cliparse"
	"github.com/danielhkuo/lift-view/db"
	"github.com/danielhkuo/lift-view/feed"
	"github.com/danielhkuo/lift-view/hallcalls"
	"github.com/danielhkuo/lift-view/middleware"
	"github.com/danielhkuo/lift-view/models"
	"github.com/danielhkuo/lift-view/router"
	"github.com/danielhkuo/lift-view/syncclient"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Optional snapshot journal
	var dbConn *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	}

	// Synchronization client
	client := syncclient.New(feed.NewSTOMP(cfg.FeedURL, cfg.FeedTopic, cfg.Origin), syncclient.Options{
		ServiceURL:     cfg.ServiceURL,
		Floors:         cfg.Floors,
		ReconnectDelay: cfg.ReconnectDelay,
		HTTPClient:     &http.Client{Timeout: cfg.RequestTimeout},
		Origin:         cfg.Origin,
	})

	var journal *db.Journal
	if dbConn != nil {
		journal = db.NewJournal(dbConn, client.ID())
	}

	// Hall-call store
	var opts []hallcalls.Option
	if cfg.CallTimeout > 0 {
		opts = append(opts, hallcalls.WithTimeout(cfg.CallTimeout))
	}
	calls := hallcalls.New(opts...)

	// Reconcile first so the view never lags the journal
	client.OnSnapshot(func(snap models.FleetSnapshot) {
		calls.Reconcile(snap)
		if journal == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if err := journal.Record(ctx, snap); err != nil {
			slog.Error("failed to journal snapshot", "error", err, "seq", snap.Seq)
		}
	})
	client.OnConnectivity(func(connected bool) {
		slog.Info("feed connectivity changed", "connected", connected, "feed", cfg.FeedURL)
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client.Connect(ctx)
	defer client.Disconnect()

	if cfg.CallTimeout > 0 {
		go sweep(ctx, calls, cfg.CallTimeout)
	}
	if journal != nil && cfg.Retention > 0 {
		go prune(ctx, journal, cfg.Retention)
	}

	// Create router
	mux := router.NewRouter(client, calls, journal, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.Origin)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		stop()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "service", cfg.ServiceURL, "floors", cfg.Floors, "client_id", client.ID())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// sweep expires unconfirmed hall calls until ctx is done
func sweep(ctx context.Context, calls *hallcalls.Store, timeout time.Duration) {
	interval := timeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			calls.Sweep()
		}
	}
}

// prune trims the journal to the retention window until ctx is done
func prune(ctx context.Context, journal *db.Journal, retention time.Duration) {
	interval := retention / 24
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		removed, err := journal.Prune(ctx, time.Now().Add(-retention))
		if err != nil && ctx.Err() == nil {
			slog.Error("failed to prune journal", "error", err)
		} else if removed > 0 {
			slog.Info("journal pruned", "removed", removed, "retention", retention)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
