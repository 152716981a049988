package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/config"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/router"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store, err := infra.NewDiskAssetStore(cfg.AssetStoragePath, cfg.Domain)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init asset store")
	}

	// Composition root for async work: the pool consumes ticket and email
	// queues; the reconcile cron scans for orphaned icon assets.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	ventaRepo := repository.NewVentaRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)

	handlers := worker.Handlers{
		Ticket: worker.NewTicketWorker(ventaRepo, empresaRepo, rdb, cfg.PDFStoragePath),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartReconcileCron(ctx, worker.ReconcileCronConfig{
		MetodoPagoRepo: metodoPagoRepo,
		Store:          store,
	})

	registroCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, router.Deps{
		DB:         db,
		RDB:        rdb,
		RegistroCB: registroCB,
		Store:      store,
		Dispatcher: dispatcher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("gestorpos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
