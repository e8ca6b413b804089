// Personal notes manager: a single-user local notes tool with a browser
// UI and an MCP endpoint, persisting to a local SQLite key-value store.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/config"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/kv"
	notesmcp "github.com/kavia-common/personal-notes-manager-17829-17842/internal/mcp"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/notes"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/obs"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	obs.Init()
	log := obs.Pkg("main")

	cfg, err := config.LoadConfig(config.ParseFlags())
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := obs.Pkg("main")
	ctx := context.Background()

	var store kv.Store
	if cfg.InMemory {
		log.Warn("running in-memory: notes will not survive a restart")
		store = kv.NewMemory()
	} else {
		sqlite, err := kv.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		store = sqlite
		log.Info("opened note store", "path", cfg.DatabasePath)
	}

	collection := notes.NewCollection(ctx, store)
	log.Info("loaded notes", "count", collection.Len())

	renderer, err := web.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	web.NewHandler(renderer, collection).RegisterRoutes(mux)
	mux.Handle("/mcp", notesmcp.NewServer(collection))

	handler := obs.RequestContextMiddleware(obs.AccessLogMiddleware("http", mux))
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr, "url", "http://"+cfg.ListenAddr+"/notes")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
