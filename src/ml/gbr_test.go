package ml

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestGradientBoostingRegressor_SingleSample(t *testing.T) {
	g := NewGradientBoostingRegressor(DefaultParams())
	rows := []SparseRow{{0, 2}}
	if err := g.Fit(context.Background(), rows, []float64{100000}, 3, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Predict(SparseRow{0, 2}); got != 100000 {
		t.Errorf("expected exactly 100000, got %v", got)
	}
	if len(g.Trees) != 200 {
		t.Errorf("expected 200 trees, got %d", len(g.Trees))
	}
}

func TestGradientBoostingRegressor_LearnsGroupMeans(t *testing.T) {
	var rows []SparseRow
	var y []float64
	for i := 0; i < 5; i++ {
		rows = append(rows, SparseRow{0}, SparseRow{1})
		y = append(y, 100, 200)
	}

	g := NewGradientBoostingRegressor(DefaultParams())
	if err := g.Fit(context.Background(), rows, y, 2, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := g.Predict(SparseRow{0}); math.Abs(got-100) > 1e-3 {
		t.Errorf("expected ~100, got %v", got)
	}
	if got := g.Predict(SparseRow{1}); math.Abs(got-200) > 1e-3 {
		t.Errorf("expected ~200, got %v", got)
	}
}

func TestGradientBoostingRegressor_ReportsProgress(t *testing.T) {
	p := DefaultParams()
	p.NEstimators = 7
	g := NewGradientBoostingRegressor(p)

	var calls, lastTotal int
	err := g.Fit(context.Background(), []SparseRow{{0}, {1}}, []float64{1, 2}, 2, func(done, total int) {
		calls++
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 7 || lastTotal != 7 {
		t.Errorf("expected 7 progress calls with total 7, got %d calls and total %d", calls, lastTotal)
	}
}

func TestGradientBoostingRegressor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGradientBoostingRegressor(DefaultParams())
	err := g.Fit(ctx, []SparseRow{{0}}, []float64{1}, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGradientBoostingRegressor_RejectsBadInput(t *testing.T) {
	g := NewGradientBoostingRegressor(DefaultParams())
	if err := g.Fit(context.Background(), nil, nil, 0, nil); err == nil {
		t.Errorf("expected error for empty dataset")
	}
	if err := g.Fit(context.Background(), []SparseRow{{0}}, []float64{math.NaN()}, 1, nil); err == nil {
		t.Errorf("expected error for NaN target")
	}
	if err := g.Fit(context.Background(), []SparseRow{{0}}, []float64{1, 2}, 1, nil); err == nil {
		t.Errorf("expected error for mismatched lengths")
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero estimators", func(p *Params) { p.NEstimators = 0 }},
		{"negative learning rate", func(p *Params) { p.LearningRate = -0.1 }},
		{"zero depth", func(p *Params) { p.MaxDepth = 0 }},
		{"min samples split below two", func(p *Params) { p.MinSamplesSplit = 1 }},
		{"zero min samples leaf", func(p *Params) { p.MinSamplesLeaf = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params should be valid: %v", err)
	}
}

func TestGradientBoostingRegressor_ValidateDetectsBrokenTrees(t *testing.T) {
	p := DefaultParams()
	p.NEstimators = 3
	g := NewGradientBoostingRegressor(p)
	if err := g.Fit(context.Background(), []SparseRow{{0}, {1}}, []float64{1, 2}, 2, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Validate(2); err != nil {
		t.Fatalf("expected fitted regressor to validate, got %v", err)
	}

	if err := g.Validate(5); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected width mismatch, got %v", err)
	}

	g.Trees = g.Trees[:2]
	if err := g.Validate(2); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected tree count mismatch, got %v", err)
	}
}
