package ml

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Params configures GradientBoostingRegressor.
type Params struct {
	NEstimators     int     `json:"n_estimators"`
	LearningRate    float64 `json:"learning_rate"`
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	MinSamplesLeaf  int     `json:"min_samples_leaf"`
	RandomState     int64   `json:"random_state"`
}

// DefaultParams: 200 stages, learning rate 0.1, depth-3 trees, seed 42.
func DefaultParams() Params {
	return Params{
		NEstimators:     200,
		LearningRate:    0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		RandomState:     42,
	}
}

func (p Params) Validate() error {
	switch {
	case p.NEstimators <= 0:
		return fmt.Errorf("n_estimators must be positive, got %d", p.NEstimators)
	case p.LearningRate <= 0 || math.IsNaN(p.LearningRate) || math.IsInf(p.LearningRate, 0):
		return fmt.Errorf("learning_rate must be a positive number, got %g", p.LearningRate)
	case p.MaxDepth <= 0:
		return fmt.Errorf("max_depth must be positive, got %d", p.MaxDepth)
	case p.MinSamplesSplit < 2:
		return fmt.Errorf("min_samples_split must be at least 2, got %d", p.MinSamplesSplit)
	case p.MinSamplesLeaf < 1:
		return fmt.Errorf("min_samples_leaf must be at least 1, got %d", p.MinSamplesLeaf)
	}
	return nil
}

// GradientBoostingRegressor is least-squares gradient boosting over one-hot
// rows. The prediction is Init + LearningRate * sum(tree(x)).
type GradientBoostingRegressor struct {
	Params Params           `json:"params"`
	Width  int              `json:"width"`
	Init   float64          `json:"init"`
	Trees  []RegressionTree `json:"trees"`
}

func NewGradientBoostingRegressor(p Params) *GradientBoostingRegressor {
	return &GradientBoostingRegressor{Params: p}
}

// Fit trains all stages. onStage, when non-nil, is called after each stage.
// ctx is checked between stages.
func (g *GradientBoostingRegressor) Fit(ctx context.Context, rows []SparseRow, y []float64, width int, onStage func(done, total int)) error {
	if err := g.Params.Validate(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("cannot fit regressor on an empty dataset")
	}
	if len(rows) != len(y) {
		return fmt.Errorf("got %d rows and %d targets", len(rows), len(y))
	}

	init := 0.0
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("target %d is not finite", i)
		}
		init += v
	}
	init /= float64(len(y))

	g.Width = width
	g.Init = init
	g.Trees = make([]RegressionTree, 0, g.Params.NEstimators)

	current := make([]float64, len(y))
	for i := range current {
		current[i] = init
	}
	residual := make([]float64, len(y))
	builder := newTreeBuilder(rows, width, g.Params, rand.New(rand.NewSource(g.Params.RandomState)))

	for stage := 0; stage < g.Params.NEstimators; stage++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("fit interrupted at stage %d: %w", stage, err)
		}
		for i := range y {
			residual[i] = y[i] - current[i]
		}
		tree := builder.build(residual)
		for i, row := range rows {
			current[i] += g.Params.LearningRate * tree.Predict(row)
		}
		g.Trees = append(g.Trees, tree)
		if onStage != nil {
			onStage(stage+1, g.Params.NEstimators)
		}
	}
	return nil
}

func (g *GradientBoostingRegressor) Predict(row SparseRow) float64 {
	out := g.Init
	for i := range g.Trees {
		out += g.Params.LearningRate * g.Trees[i].Predict(row)
	}
	return out
}

// Validate checks a decoded regressor against its own parameters and the
// encoder width it was trained with.
func (g *GradientBoostingRegressor) Validate(width int) error {
	if err := g.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if g.Width != width {
		return fmt.Errorf("%w: regressor width %d does not match encoder width %d", ErrSchemaMismatch, g.Width, width)
	}
	if len(g.Trees) != g.Params.NEstimators {
		return fmt.Errorf("%w: %d trees stored for n_estimators=%d", ErrSchemaMismatch, len(g.Trees), g.Params.NEstimators)
	}
	if math.IsNaN(g.Init) || math.IsInf(g.Init, 0) {
		return fmt.Errorf("%w: initial prediction is not finite", ErrSchemaMismatch)
	}
	for t, tree := range g.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrSchemaMismatch, t)
		}
		for i, n := range tree.Nodes {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return fmt.Errorf("%w: tree %d node %d has a non-finite value", ErrSchemaMismatch, t, i)
			}
			if n.Feature == leafFeature {
				continue
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("%w: tree %d node %d splits on column %d outside [0,%d)", ErrSchemaMismatch, t, i, n.Feature, width)
			}
			if n.Left <= i || n.Right <= i || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("%w: tree %d node %d has invalid children", ErrSchemaMismatch, t, i)
			}
		}
	}
	return nil
}
