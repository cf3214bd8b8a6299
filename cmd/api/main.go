package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tlb-lemrabott/mauriexchange/internal/adapter/jsonfile"
	"github.com/tlb-lemrabott/mauriexchange/internal/adapter/postgres"
	"github.com/tlb-lemrabott/mauriexchange/internal/handler"
	"github.com/tlb-lemrabott/mauriexchange/internal/service"
	"github.com/tlb-lemrabott/mauriexchange/internal/store"
	"github.com/tlb-lemrabott/mauriexchange/internal/usecase"
	"github.com/tlb-lemrabott/mauriexchange/pkg/config"
	"github.com/tlb-lemrabott/mauriexchange/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.Log.Level)

	log.Infof("Starting %s...", cfg.App.Name)

	// load dataset once; the store is immutable for the process lifetime
	loader := jsonfile.NewLoader(cfg.Data.Path, log)
	currencies, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load currency data: %v", err)
	}
	rateStore := store.New(currencies)
	log.Infof("Rate store initialized with %d currencies", rateStore.Len())

	dbPool, err := postgres.InitDBPool(*cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize db pool: %v", err)
	}
	defer dbPool.Close()

	conversionRepo := postgres.NewConversionRepo(dbPool, log)
	log.Info("Initialized conversion audit repository")

	rateService := service.NewRateService(rateStore, cfg.Rates.Base, log)
	log.Info("Initialized rate service")

	currencyUsecase := usecase.NewCurrencyUsecase(
		rateService,
		conversionRepo,
		log,
		cfg.Rates.Margin,
		cfg.Pagination.DefaultPageSize,
		cfg.Pagination.MaxPageSize,
	)
	log.Info("Initialized usecase layer")

	currencyHandler := handler.NewCurrencyHandler(currencyUsecase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://127.0.0.1:4200"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	currencyHandler.RegisterRoutes(r)

	// daily heartbeat: log a snapshot summary so stale data is noticed
	c := cron.New()
	_, err = c.AddFunc("0 6 * * *", func() {
		snapshot := currencyUsecase.LatestRates()
		log.Infof("Daily summary: %d currencies, latest rate date %s", len(snapshot.Data), snapshot.Date)
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily summary: %v", err)
	}
	c.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	go func() {
		log.Infof("Server starting on port %s...", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Got shutdown signal...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Error server shutdown:", err)
	}
	log.Info("Server stopped")

	c.Stop()
	log.Info("Scheduler stopped")

	log.Info("Gracefully shut down")
}
