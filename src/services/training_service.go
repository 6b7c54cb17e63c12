package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/ml"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/parsers"
	"github.com/username/salarypredictor/src/processors"
)

type TrainingConfig struct {
	Params   ml.Params
	TestSize float64
	Filter   *processors.RecordFilter
	// OnStage, when set, receives boosting progress.
	OnStage func(done, total int)
}

// NewTrainingConfig maps the model settings onto regressor parameters.
func NewTrainingConfig(mc config.ModelConfig, filter *processors.RecordFilter) TrainingConfig {
	params := ml.DefaultParams()
	params.NEstimators = mc.NEstimators
	params.LearningRate = mc.LearningRate
	params.MaxDepth = mc.MaxDepth
	params.RandomState = mc.RandomSeed
	return TrainingConfig{Params: params, TestSize: mc.TestSize, Filter: filter}
}

type trainingServiceImpl struct {
	store  model.ArtifactStore
	rates  models.RateTable
	corpus *Corpus
	cfg    TrainingConfig

	mu sync.Mutex
}

func NewTrainingService(store model.ArtifactStore, rates models.RateTable, corpus *Corpus, cfg TrainingConfig) TrainingService {
	return &trainingServiceImpl{
		store:  store,
		rates:  rates,
		corpus: corpus,
		cfg:    cfg,
	}
}

// LoadCorpus parses r, normalizes every salary to USD with the process rate
// table and applies the training filter.
func (s *trainingServiceImpl) LoadCorpus(r io.Reader, format string) ([]models.HistoricalRecord, error) {
	parser, err := parsers.GetParser(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	records, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}

	normalized := processors.NormalizeSalaries(records, s.rates)
	filtered := s.cfg.Filter.Apply(normalized)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no records left after filtering", ErrProcessingFailed)
	}
	logger.L.Info("Corpus loaded", "format", format, "parsed", len(records), "used", len(filtered))
	return filtered, nil
}

// Train fits a new pipeline on records, persists it (replacing the previous
// artifact) and makes records the current corpus. Runs are serialized.
func (s *trainingServiceImpl) Train(ctx context.Context, records []models.HistoricalRecord) (*models.TrainingReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrProcessingFailed)
	}

	trainIdx, testIdx := ml.TrainTestSplit(len(records), s.cfg.TestSize, s.cfg.Params.RandomState)
	rows, y := selectRows(records, trainIdx)
	logger.L.Info("Training START", "corpus", len(records), "train", len(trainIdx), "holdout", len(testIdx),
		"nEstimators", s.cfg.Params.NEstimators, "learningRate", s.cfg.Params.LearningRate, "seed", s.cfg.Params.RandomState)

	pipeline := ml.NewPipeline(models.FeatureColumns(), s.cfg.Params)
	if err := pipeline.Fit(ctx, rows, y, s.cfg.OnStage); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	holdout, err := evaluate(pipeline, records, testIdx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	artifact := model.NewArtifact(pipeline, len(trainIdx), len(testIdx), holdout)
	if err := s.store.Save(ctx, artifact); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}
	if s.corpus != nil {
		s.corpus.Replace(records)
	}

	report := &models.TrainingReport{
		ModelID:        artifact.ID,
		TrainedAt:      artifact.TrainedAt,
		CorpusSize:     len(records),
		TrainSamples:   len(trainIdx),
		HoldoutSamples: len(testIdx),
		Holdout:        holdout,
		Duration:       time.Since(start),
	}
	if holdout != nil {
		logger.L.Info("Training END", "modelID", report.ModelID, "duration", report.Duration,
			"mae", holdout.MAE, "rmse", holdout.RMSE, "r2", holdout.R2)
	} else {
		logger.L.Info("Training END", "modelID", report.ModelID, "duration", report.Duration, "holdout", "none")
	}
	return report, nil
}

func selectRows(records []models.HistoricalRecord, idx []int) ([][]string, []float64) {
	rows := make([][]string, len(idx))
	y := make([]float64, len(idx))
	for i, j := range idx {
		rows[i] = records[j].Features()
		y[i] = records[j].SalaryInUSD
	}
	return rows, y
}

// evaluate scores the pipeline on the held-out records. It returns nil when
// there is no holdout.
func evaluate(p *ml.Pipeline, records []models.HistoricalRecord, testIdx []int) (*models.HoldoutMetrics, error) {
	if len(testIdx) == 0 {
		return nil, nil
	}
	rows, yTrue := selectRows(records, testIdx)
	yPred := make([]float64, len(rows))
	for i, row := range rows {
		v, err := p.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("scoring holdout row %d: %w", i, err)
		}
		yPred[i] = v
	}
	m := &models.HoldoutMetrics{
		Samples: len(rows),
		MAE:     ml.MAE(yTrue, yPred),
		RMSE:    ml.RMSE(yTrue, yPred),
	}
	if r2, ok := ml.R2(yTrue, yPred); ok {
		m.R2 = &r2
	}
	return m, nil
}
