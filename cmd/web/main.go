// cmd/web/main.go
//
// Pizza – local order API entry point.
//
// Start-up
// --------
//
//  1. Load configuration (.env → conf/global.yaml → PIZZA_ env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load the form definition (embedded unless form.definition is set).
//
//  4. Pick the order store: MySQL when database.dsn is set (or read from
//     Vault via database.vault_path), otherwise an in-memory LRU of recent
//     orders.  An optional GeoLite2 database adds countries to order logs.
//
//  5. Build the chi router (orders, /healthz, /metrics) and serve it on
//     http.listen_addr until SIGINT or SIGTERM, then drain gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/pizzaorder/internal/config"
	"github.com/yanizio/pizzaorder/internal/database"
	"github.com/yanizio/pizzaorder/internal/form"
	"github.com/yanizio/pizzaorder/internal/logger"
	"github.com/yanizio/pizzaorder/internal/orderapi"
	"github.com/yanizio/pizzaorder/internal/requestinfo"
	"github.com/yanizio/pizzaorder/internal/server"
	"github.com/yanizio/pizzaorder/internal/vault"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Log.Dir, "web", cfg.Log.Level, logger.RunningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	if err := run(cfg, logOut); err != nil {
		logOut.Fatalw("order api stopped", "err", err)
	}
}

func run(cfg *config.Config, logOut *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Form definition ─────────────────────────────────────────────
	//
	def := form.DefaultDefinition()
	if cfg.Form.Definition != "" {
		fd, err := form.LoadDefinition(cfg.Form.Definition)
		if err != nil {
			return err
		}
		def = fd
	}
	logOut.Infow("form definition loaded", "id", def.ID, "toppings", len(def.Toppings))

	//
	// ── 2.  Order store ─────────────────────────────────────────────────
	//
	dsn := cfg.Database.DSN
	if dsn == "" && cfg.Database.VaultPath != "" {
		vc, err := vault.New(ctx, vault.Options{Renew: true, Log: logOut})
		if err != nil {
			return err
		}
		if dsn, err = vc.GetKV(ctx, cfg.Database.VaultPath, cfg.Database.VaultKey, 0); err != nil {
			return err
		}
		logOut.Infow("order DB DSN read from vault", "path", cfg.Database.VaultPath)
	}

	var store orderapi.Store = orderapi.NewMemoryStore(cfg.Orders.RecentLimit)
	if dsn != "" {
		logOut.Info("connecting to order DB …")
		db, err := database.Open(ctx, dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		store = orderapi.NewSQLStore(db)
		logOut.Info("order DB online")
	}

	//
	// ── 3.  Router and server ───────────────────────────────────────────
	//
	opts := orderapi.RouterOptions{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		ForceHTTPS:  cfg.HTTP.ForceHTTPS,
		Log:         logOut,
	}
	if cfg.Orders.GeoIPDB != "" {
		geo, err := requestinfo.OpenGeo(cfg.Orders.GeoIPDB)
		if err != nil {
			return err
		}
		defer geo.Close()
		opts.Geo = geo
		logOut.Infow("geoip database loaded", "path", cfg.Orders.GeoIPDB)
	}

	h := orderapi.NewHandler(store, def, logOut)
	router := orderapi.NewRouter(h, opts)
	srv := server.New(cfg.HTTP.ListenAddr, router, logOut.Desugar())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), server.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
