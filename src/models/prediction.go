package models

import "time"

// PredictionResult is what the UI and the JSON API display.
type PredictionResult struct {
	PredictedUSD float64 `json:"predicted_usd"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Display      string  `json:"display"`
	ModelID      string  `json:"model_id"`
}

// HoldoutMetrics are computed on the held-out partition of a training run.
// R2 is nil when it is undefined (fewer than two samples or constant target).
type HoldoutMetrics struct {
	Samples int      `json:"samples"`
	MAE     float64  `json:"mae"`
	RMSE    float64  `json:"rmse"`
	R2      *float64 `json:"r2,omitempty"`
}

// TrainingReport summarises one training run.
type TrainingReport struct {
	ModelID        string          `json:"model_id"`
	TrainedAt      time.Time       `json:"trained_at"`
	CorpusSize     int             `json:"corpus_size"`
	TrainSamples   int             `json:"train_samples"`
	HoldoutSamples int             `json:"holdout_samples"`
	Holdout        *HoldoutMetrics `json:"holdout,omitempty"`
	Duration       time.Duration   `json:"duration"`
}

// ModelInfo describes the persisted artifact without its trees.
type ModelInfo struct {
	ModelID        string          `json:"model_id"`
	TrainedAt      time.Time       `json:"trained_at"`
	Features       []string        `json:"features"`
	NEstimators    int             `json:"n_estimators"`
	LearningRate   float64         `json:"learning_rate"`
	TrainSamples   int             `json:"train_samples"`
	HoldoutSamples int             `json:"holdout_samples"`
	Holdout        *HoldoutMetrics `json:"holdout,omitempty"`
}
