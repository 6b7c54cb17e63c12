package services

import (
	"context"
	"fmt"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/processors"
	"github.com/username/salarypredictor/src/security/validation"
	"github.com/username/salarypredictor/src/utils"
)

type predictionServiceImpl struct {
	store  model.ArtifactStore
	rates  models.RateTable
	source models.RateSource
}

func NewPredictionService(store model.ArtifactStore, rates models.RateTable, source models.RateSource) PredictionService {
	return &predictionServiceImpl{store: store, rates: rates, source: source}
}

// Predict reloads the artifact, predicts the USD salary for in and converts
// it to in.TargetCurrency.
func (s *predictionServiceImpl) Predict(ctx context.Context, in models.PredictionInput) (*models.PredictionResult, error) {
	in, err := sanitizeInput(in)
	if err != nil {
		return nil, err
	}

	artifact, err := s.store.Load(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Model artifact could not be loaded", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnavailable, err)
	}

	usd, err := safePredict(artifact, in)
	if err != nil {
		logger.FromContext(ctx).Warn("Prediction failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	amount := utils.RoundMoney(processors.Convert(usd, in.TargetCurrency, s.rates))
	return &models.PredictionResult{
		PredictedUSD: utils.RoundMoney(usd),
		Amount:       amount,
		Currency:     in.TargetCurrency,
		Display:      utils.FormatMoney(amount, in.TargetCurrency),
		ModelID:      artifact.ID,
	}, nil
}

func (s *predictionServiceImpl) ModelInfo(ctx context.Context) (*models.ModelInfo, error) {
	artifact, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnavailable, err)
	}
	info := artifact.Info()
	return &info, nil
}

func (s *predictionServiceImpl) Rates() (models.RateTable, models.RateSource) {
	return s.rates.Clone(), s.source
}

// safePredict turns a panic inside the pipeline into an error.
func safePredict(a *model.Artifact, in models.PredictionInput) (usd float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prediction panicked: %v", r)
		}
	}()
	return a.Pipeline.Predict(in.Features())
}

func sanitizeInput(in models.PredictionInput) (models.PredictionInput, error) {
	out := models.PredictionInput{
		JobTitle:          validation.SanitizeText(in.JobTitle),
		ExperienceLevel:   validation.SanitizeText(in.ExperienceLevel),
		EmploymentType:    validation.SanitizeText(in.EmploymentType),
		WorkModel:         validation.SanitizeText(in.WorkModel),
		EmployeeResidence: validation.SanitizeText(in.EmployeeResidence),
		CompanyLocation:   validation.SanitizeText(in.CompanyLocation),
		CompanySize:       validation.SanitizeText(in.CompanySize),
		TargetCurrency:    validation.SanitizeCurrencyCode(in.TargetCurrency),
	}
	for _, v := range append(out.Features(), out.TargetCurrency) {
		if v == "" {
			return out, ErrInvalidInput
		}
	}
	return out, nil
}
