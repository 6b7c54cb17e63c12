package services

import (
	"context"
	"io"

	"github.com/username/salarypredictor/src/models"
)

// PredictionService answers salary predictions from the persisted artifact.
type PredictionService interface {
	Predict(ctx context.Context, in models.PredictionInput) (*models.PredictionResult, error)
	ModelInfo(ctx context.Context) (*models.ModelInfo, error)
	Rates() (models.RateTable, models.RateSource)
}

// TrainingService turns a corpus into a persisted artifact.
type TrainingService interface {
	LoadCorpus(r io.Reader, format string) ([]models.HistoricalRecord, error)
	Train(ctx context.Context, records []models.HistoricalRecord) (*models.TrainingReport, error)
}

// ChartService aggregates the current corpus for the two charts.
type ChartService interface {
	SalaryByTitle() ([]models.TitleSalary, uint64)
	SalaryByExperience() ([]models.ExperienceSalaryRange, uint64)
}
