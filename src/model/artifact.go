package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/username/salarypredictor/src/ml"
	"github.com/username/salarypredictor/src/models"
)

// FormatVersion is bumped whenever the encoded layout changes.
const FormatVersion = 1

var (
	// ErrArtifactNotFound means nothing has been saved to the slot yet.
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrArtifactCorrupt means the stored blob cannot be used as a pipeline.
	ErrArtifactCorrupt = errors.New("model artifact is corrupt")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Artifact is the persisted unit: a fitted pipeline plus the facts about the
// training run that produced it.
type Artifact struct {
	FormatVersion  int                    `json:"format_version"`
	ID             string                 `json:"id"`
	TrainedAt      time.Time              `json:"trained_at"`
	TrainSamples   int                    `json:"train_samples"`
	HoldoutSamples int                    `json:"holdout_samples"`
	Holdout        *models.HoldoutMetrics `json:"holdout,omitempty"`
	Pipeline       *ml.Pipeline           `json:"pipeline"`
}

// NewArtifact wraps a fitted pipeline with a fresh run id and timestamp.
func NewArtifact(p *ml.Pipeline, trainSamples, holdoutSamples int, holdout *models.HoldoutMetrics) *Artifact {
	return &Artifact{
		FormatVersion:  FormatVersion,
		ID:             uuid.NewString(),
		TrainedAt:      time.Now().UTC(),
		TrainSamples:   trainSamples,
		HoldoutSamples: holdoutSamples,
		Holdout:        holdout,
		Pipeline:       p,
	}
}

// Info summarises the artifact without its trees.
func (a *Artifact) Info() models.ModelInfo {
	info := models.ModelInfo{
		ModelID:        a.ID,
		TrainedAt:      a.TrainedAt,
		TrainSamples:   a.TrainSamples,
		HoldoutSamples: a.HoldoutSamples,
		Holdout:        a.Holdout,
	}
	if a.Pipeline != nil {
		info.Features = append([]string(nil), a.Pipeline.Features...)
		if a.Pipeline.Regressor != nil {
			info.NEstimators = a.Pipeline.Regressor.Params.NEstimators
			info.LearningRate = a.Pipeline.Regressor.Params.LearningRate
		}
	}
	return info
}

// EncodeArtifact serializes a for storage.
func EncodeArtifact(a *Artifact) ([]byte, error) {
	if a == nil || a.Pipeline == nil {
		return nil, fmt.Errorf("cannot encode an empty artifact")
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model artifact: %w", err)
	}
	return data, nil
}

// DecodeArtifact parses and validates a stored blob. Every failure wraps
// ErrArtifactCorrupt.
func DecodeArtifact(data []byte) (*Artifact, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrArtifactCorrupt)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d", ErrArtifactCorrupt, a.FormatVersion, FormatVersion)
	}
	if a.Pipeline == nil {
		return nil, fmt.Errorf("%w: no pipeline", ErrArtifactCorrupt)
	}
	if err := a.Pipeline.Validate(models.FeatureColumns()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	return &a, nil
}
