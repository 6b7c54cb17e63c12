package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/handlers"
	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/processors"
	"github.com/username/salarypredictor/src/services"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(cfg.LogLevel)
	logger.L.Info("Salary predictor server starting...")

	filter, err := processors.NewRecordFilter(cfg.Model.TrainingFilter)
	if err != nil {
		logger.L.Error("Invalid TRAINING_FILTER", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing model store...", "store", cfg.ModelStore)
	store, err := model.OpenStore(cfg)
	if err != nil {
		logger.L.Error("Failed to open model store", "store", cfg.ModelStore, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := processors.NewRateFetcher(&http.Client{Timeout: cfg.RatesTimeout}, cfg.RatesURL)
	rates, source := fetcher.GetRates(ctx)

	corpus := services.NewCorpus()
	trainingService := services.NewTrainingService(store, rates, corpus, services.NewTrainingConfig(cfg.Model, filter))
	predictionService := services.NewPredictionService(store, rates, source)
	chartService := services.NewChartService(corpus, cfg.Display.ExperienceLevels, cfg.ChartCacheTTL)

	if err := trainFromDataFile(ctx, cfg, trainingService); err != nil {
		// Keep serving: predictions use whatever artifact the store already holds.
		logger.L.Error("Startup training failed", "dataPath", cfg.DataPath, "error", err)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:            cfg,
		PredictionService: predictionService,
		TrainingService:   trainingService,
		ChartService:      chartService,
		Corpus:            corpus,
		Limiter:           rate.NewLimiter(rate.Every(100*time.Millisecond), 30),
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.L.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.L.Error("Server shutdown failed", "error", err)
		}
	}()

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	}
	logger.L.Info("Server stopped gracefully.")
}

// trainFromDataFile loads the configured corpus, fits the pipeline and
// persists it before the server accepts requests.
func trainFromDataFile(ctx context.Context, cfg *config.AppConfig, trainer services.TrainingService) error {
	f, err := os.Open(cfg.DataPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := trainer.LoadCorpus(f, cfg.DataFormat)
	if err != nil {
		return err
	}
	report, err := trainer.Train(ctx, records)
	if err != nil {
		return err
	}
	logger.L.Info("Startup training complete", "modelID", report.ModelID, "corpus", report.CorpusSize,
		"train", report.TrainSamples, "holdout", report.HoldoutSamples, "duration", report.Duration.String())
	return nil
}
