package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"ashoka_frontdesk/internal/adapters/frontdesk"
	server "ashoka_frontdesk/internal/adapters/http_server"
	"ashoka_frontdesk/internal/adapters/observability"
	redisad "ashoka_frontdesk/internal/adapters/redis"
	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/shared"
	mysqlrepo "ashoka_frontdesk/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// redis
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; catalog cache and rate store will fall back")
	}

	// deps
	api, err := frontdesk.New(cfg.HotelAPIBase, cfg.HotelAPIToken, cfg.HotelAPIRPS, cfg.HotelAPITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize hotel API client")
	}
	journal := mysqlrepo.New(db)
	desk := app.NewFrontDesk(api, redisad.NewRateStore(cache), journal, app.Defaults{
		Rates:          domain.GSTRates{CGST: cfg.Pricing.CGSTRate, SGST: cfg.Pricing.SGSTRate},
		ExtraBedCharge: cfg.Pricing.ExtraBedCharge,
	})
	catalog := app.NewCatalogService(api, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.HotelAPITimeout + 5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Desk:    desk,
		Catalog: catalog,
		Health:  map[string]server.Pinger{"mysql": journal, "redis": cache},
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.HotelAPIBase).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	_ = cache.Close()
	_ = db.Close()
}
