// Command server runs the studio site: the public pages, the admin console,
// and the JSON API over one SQLite database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"studio-site/internal/app"
	"studio-site/internal/config"
	internaldb "studio-site/internal/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Write pool is a single connection; reads get four.
	store, err := internaldb.OpenStore(cfg.DBPath, 4)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close() //nolint:errcheck

	if err := internaldb.Migrate(store.Write.DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if v, err := internaldb.SchemaVersion(store.Write.DB); err == nil {
		logger.Info("database ready", "path", cfg.DBPath, "schema_version", v)
	}

	application, err := app.New(ctx, app.Deps{Cfg: cfg, Store: store, Logger: logger})
	if err != nil {
		return fmt.Errorf("wire app: %w", err)
	}
	defer application.Close()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	tls := cfg.TLSCertFile != ""
	scheme := "http"
	if tls {
		scheme = "https"
	}
	logger.Info("listening", "addr", cfg.ListenAddr, "tls", tls, "env", cfg.Env)
	logger.Info("try", "url", fmt.Sprintf("%s://%s/healthz", scheme, browseAddr(cfg.ListenAddr)))

	if tls {
		err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// browseAddr turns a listen address into a host:port a local
// client can dial. Wildcard and empty hosts become localhost.
func browseAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
