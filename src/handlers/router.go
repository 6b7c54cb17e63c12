package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/services"
)

// RouterDeps carries what the HTTP layer needs from main.
type RouterDeps struct {
	Config            *config.AppConfig
	PredictionService services.PredictionService
	TrainingService   services.TrainingService
	ChartService      services.ChartService
	Corpus            *services.Corpus
	Limiter           *rate.Limiter
}

func NewRouter(deps RouterDeps) http.Handler {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)
	}

	pageHandler := NewPageHandler(deps.PredictionService, deps.ChartService, deps.Config.Display)
	predictionHandler := NewPredictionHandler(deps.PredictionService)
	chartHandler := NewChartHandler(deps.ChartService)
	uploadHandler := NewUploadHandler(deps.TrainingService, deps.Config.MaxUploadSizeBytes)
	exportHandler := NewExportHandler(deps.Corpus)
	healthHandler := NewHealthHandler(deps.PredictionService, deps.Corpus)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(RateLimitMiddleware(limiter))

	r.Get("/api/health", healthHandler.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", pageHandler.HandleIndex)
		r.Post("/predict", pageHandler.HandlePredict)

		r.Post("/api/predict", predictionHandler.HandlePredict)
		r.Get("/api/model", predictionHandler.HandleGetModel)
		r.Get("/api/rates", predictionHandler.HandleGetRates)
		r.Get("/api/charts/salary-by-title", chartHandler.HandleGetSalaryByTitle)
		r.Get("/api/charts/salary-by-experience", chartHandler.HandleGetSalaryByExperience)
		r.Get("/api/corpus.csv", exportHandler.HandleExportCSV)
	})

	// Retraining can outlast the request timeout above.
	r.Post("/api/corpus", uploadHandler.HandleUpload)

	return r
}
