package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/services"
)

type MockPredictionService struct {
	Result    *models.PredictionResult
	Info      *models.ModelInfo
	Err       error
	LastInput models.PredictionInput
}

func (m *MockPredictionService) Predict(_ context.Context, in models.PredictionInput) (*models.PredictionResult, error) {
	m.LastInput = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *MockPredictionService) ModelInfo(_ context.Context) (*models.ModelInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Info, nil
}

func (m *MockPredictionService) Rates() (models.RateTable, models.RateSource) {
	return models.RateTable{"USD": 1, "EUR": 0.91}, models.RateSourceFallback
}

type MockChartService struct {
	Bars  []models.TitleSalary
	Boxes []models.ExperienceSalaryRange
}

func (m *MockChartService) SalaryByTitle() ([]models.TitleSalary, uint64) { return m.Bars, 1 }

func (m *MockChartService) SalaryByExperience() ([]models.ExperienceSalaryRange, uint64) {
	return m.Boxes, 1
}

type MockTrainingService struct {
	LoadErr    error
	TrainErr   error
	LoadCalled bool
	Format     string
	Body       string
}

func (m *MockTrainingService) LoadCorpus(r io.Reader, format string) ([]models.HistoricalRecord, error) {
	m.LoadCalled = true
	m.Format = format
	data, _ := io.ReadAll(r)
	m.Body = string(data)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return []models.HistoricalRecord{{JobTitle: "Engineer", SalaryInUSD: 1}}, nil
}

func (m *MockTrainingService) Train(_ context.Context, records []models.HistoricalRecord) (*models.TrainingReport, error) {
	if m.TrainErr != nil {
		return nil, m.TrainErr
	}
	return &models.TrainingReport{ModelID: "run-1", CorpusSize: len(records), TrainSamples: len(records)}, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Display: config.DisplayConfig{
			Currencies:       []string{"USD", "EUR"},
			ExperienceLevels: []string{"Entry-level", "Mid-level", "Senior-level"},
			EmploymentTypes:  []string{"Full-time"},
			WorkModels:       []string{"Remote"},
			CompanySizes:     []string{"Medium"},
		},
		MaxUploadSizeBytes: 1 << 20,
		AllowedOrigins:     []string{"http://localhost:3000"},
	}
}

type testDeps struct {
	predictor *MockPredictionService
	charts    *MockChartService
	trainer   *MockTrainingService
	corpus    *services.Corpus
}

func newTestRouter(d *testDeps) http.Handler {
	if d.predictor == nil {
		d.predictor = &MockPredictionService{}
	}
	if d.charts == nil {
		d.charts = &MockChartService{}
	}
	if d.trainer == nil {
		d.trainer = &MockTrainingService{}
	}
	if d.corpus == nil {
		d.corpus = services.NewCorpus()
	}
	return NewRouter(RouterDeps{
		Config:            testConfig(),
		PredictionService: d.predictor,
		TrainingService:   d.trainer,
		ChartService:      d.charts,
		Corpus:            d.corpus,
		Limiter:           rate.NewLimiter(rate.Every(time.Millisecond), 1000),
	})
}
