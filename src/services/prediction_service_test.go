package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/username/salarypredictor/src/ml"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/processors"
)

func validInput(currency string) models.PredictionInput {
	return models.PredictionInput{
		JobTitle: "Engineer", ExperienceLevel: "Mid-level", EmploymentType: "Full-time", WorkModel: "Remote",
		EmployeeResidence: "US", CompanyLocation: "US", CompanySize: "Medium", TargetCurrency: currency,
	}
}

func trainedStore(t *testing.T) *MockArtifactStore {
	t.Helper()
	store := &MockArtifactStore{}
	trainer := NewTrainingService(store, models.RateTable{"USD": 1}, NewCorpus(), testTrainingConfig(200))
	if _, err := trainer.Train(context.Background(), []models.HistoricalRecord{record("Engineer", "Mid-level", "Medium", 100000)}); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return store
}

func TestPredict_ConvertsToTargetCurrency(t *testing.T) {
	svc := NewPredictionService(trainedStore(t), processors.FallbackRates(), models.RateSourceFallback)

	tests := []struct {
		currency string
		want     float64
		display  string
	}{
		{"INR", 8350000, "8,350,000.00 INR"},
		{"gbp", 78000, "78,000.00 GBP"},
		{"JPY", 100000, "100,000.00 JPY"},
	}
	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			res, err := svc.Predict(context.Background(), validInput(tt.currency))
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if math.Abs(res.Amount-tt.want) > 1e-6 {
				t.Errorf("Amount = %v, want %v", res.Amount, tt.want)
			}
			if res.Display != tt.display {
				t.Errorf("Display = %q, want %q", res.Display, tt.display)
			}
		})
	}
}

func TestPredict_InvalidInput(t *testing.T) {
	svc := NewPredictionService(trainedStore(t), processors.FallbackRates(), models.RateSourceFallback)

	missingTitle := validInput("USD")
	missingTitle.JobTitle = "   "
	markupOnly := validInput("USD")
	markupOnly.CompanySize = "<script></script>"
	noCurrency := validInput("")

	for name, in := range map[string]models.PredictionInput{
		"missing title": missingTitle,
		"markup only":   markupOnly,
		"no currency":   noCurrency,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Predict(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	// The service keeps working after a rejected request.
	if _, err := svc.Predict(context.Background(), validInput("USD")); err != nil {
		t.Errorf("valid request after failures: %v", err)
	}
}

func TestPredict_UnseenCategoryIsFinite(t *testing.T) {
	svc := NewPredictionService(trainedStore(t), models.RateTable{"USD": 1}, models.RateSourceLive)
	in := validInput("USD")
	in.JobTitle = "Astronaut"
	in.CompanyLocation = "Mars"
	res, err := svc.Predict(context.Background(), in)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.IsNaN(res.Amount) || math.IsInf(res.Amount, 0) {
		t.Errorf("non-finite prediction %v", res.Amount)
	}
}

func TestPredict_ArtifactUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		store *MockArtifactStore
		want  error
	}{
		{"not found", &MockArtifactStore{}, model.ErrArtifactNotFound},
		{"corrupt", &MockArtifactStore{ForceError: model.ErrArtifactCorrupt}, model.ErrArtifactCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPredictionService(tt.store, models.RateTable{"USD": 1}, models.RateSourceLive)
			_, err := svc.Predict(context.Background(), validInput("USD"))
			if !errors.Is(err, ErrArtifactUnavailable) || !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want ErrArtifactUnavailable wrapping %v", err, tt.want)
			}
			if _, err := svc.ModelInfo(context.Background()); !errors.Is(err, ErrArtifactUnavailable) {
				t.Errorf("ModelInfo err = %v, want ErrArtifactUnavailable", err)
			}
		})
	}
}

func TestPredict_RecoversFromPanic(t *testing.T) {
	broken := &model.Artifact{ID: "broken", Pipeline: &ml.Pipeline{Features: models.FeatureColumns()}}
	svc := NewPredictionService(&MockArtifactStore{Artifact: broken}, models.RateTable{"USD": 1}, models.RateSourceLive)
	if _, err := svc.Predict(context.Background(), validInput("USD")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRates_ReturnsCopy(t *testing.T) {
	svc := NewPredictionService(&MockArtifactStore{}, processors.FallbackRates(), models.RateSourceFallback)
	rates, source := svc.Rates()
	if source != models.RateSourceFallback {
		t.Errorf("source = %q", source)
	}
	rates["EUR"] = 99
	again, _ := svc.Rates()
	if again["EUR"] != 0.91 {
		t.Error("Rates() exposed the internal table")
	}
}
