package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrSchemaMismatch marks a pipeline whose stored structure does not match
// what the caller expects.
var ErrSchemaMismatch = errors.New("pipeline schema mismatch")

// Pipeline is a fitted OneHotEncoder feeding a GradientBoostingRegressor.
type Pipeline struct {
	Features  []string                   `json:"features"`
	Encoder   *OneHotEncoder             `json:"encoder"`
	Regressor *GradientBoostingRegressor `json:"regressor"`
}

func NewPipeline(features []string, p Params) *Pipeline {
	return &Pipeline{
		Features:  append([]string(nil), features...),
		Encoder:   NewOneHotEncoder(features),
		Regressor: NewGradientBoostingRegressor(p),
	}
}

// Fit learns the encoder categories from rows and then boosts the regressor
// on the encoded rows.
func (p *Pipeline) Fit(ctx context.Context, rows [][]string, y []float64, onStage func(done, total int)) error {
	if err := p.Encoder.Fit(rows); err != nil {
		return fmt.Errorf("fitting encoder: %w", err)
	}
	encoded, err := p.Encoder.TransformAll(rows)
	if err != nil {
		return fmt.Errorf("encoding training rows: %w", err)
	}
	if err := p.Regressor.Fit(ctx, encoded, y, p.Encoder.Width(), onStage); err != nil {
		return fmt.Errorf("fitting regressor: %w", err)
	}
	return nil
}

// Predict encodes a single row and returns the regressor output.
func (p *Pipeline) Predict(row []string) (float64, error) {
	enc, err := p.Encoder.Transform(row)
	if err != nil {
		return 0, err
	}
	out := p.Regressor.Predict(enc)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("prediction is not finite")
	}
	return out, nil
}

// Validate checks that the pipeline was fitted on exactly the expected
// feature columns, in order, and that its parts are internally consistent.
func (p *Pipeline) Validate(expected []string) error {
	if p.Encoder == nil || p.Regressor == nil {
		return fmt.Errorf("%w: pipeline is missing its encoder or regressor", ErrSchemaMismatch)
	}
	if !equalStrings(p.Features, expected) {
		return fmt.Errorf("%w: features %v, expected %v", ErrSchemaMismatch, p.Features, expected)
	}
	if !equalStrings(p.Encoder.Features, expected) {
		return fmt.Errorf("%w: encoder features %v, expected %v", ErrSchemaMismatch, p.Encoder.Features, expected)
	}
	if err := p.Encoder.Validate(); err != nil {
		return err
	}
	return p.Regressor.Validate(p.Encoder.Width())
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
