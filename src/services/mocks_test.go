package services

import (
	"context"
	"errors"

	"github.com/username/salarypredictor/src/ml"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/models"
)

type MockArtifactStore struct {
	Artifact   *model.Artifact
	SaveCalled int
	ForceError error
}

func (m *MockArtifactStore) Save(_ context.Context, a *model.Artifact) error {
	m.SaveCalled++
	if m.ForceError != nil {
		return m.ForceError
	}
	m.Artifact = a
	return nil
}

func (m *MockArtifactStore) Load(_ context.Context) (*model.Artifact, error) {
	if m.ForceError != nil {
		return nil, m.ForceError
	}
	if m.Artifact == nil {
		return nil, model.ErrArtifactNotFound
	}
	return m.Artifact, nil
}

func (m *MockArtifactStore) Close() error { return nil }

var errStoreDown = errors.New("store down")

func testTrainingConfig(nEstimators int) TrainingConfig {
	p := ml.DefaultParams()
	p.NEstimators = nEstimators
	return TrainingConfig{Params: p, TestSize: 0.2}
}

func record(title, level, size string, usd float64) models.HistoricalRecord {
	return models.HistoricalRecord{
		JobTitle:          title,
		ExperienceLevel:   level,
		EmploymentType:    "Full-time",
		WorkModel:         "Remote",
		EmployeeResidence: "US",
		CompanyLocation:   "US",
		CompanySize:       size,
		Salary:            usd,
		SalaryCurrency:    "USD",
		SalaryInUSD:       usd,
	}
}

func sampleCorpus() []models.HistoricalRecord {
	return []models.HistoricalRecord{
		record("Engineer", "Senior-level", "Large", 180000),
		record("Engineer", "Mid-level", "Medium", 120000),
		record("Engineer", "Entry-level", "Small", 80000),
		record("Analyst", "Senior-level", "Large", 110000),
		record("Analyst", "Mid-level", "Medium", 75000),
		record("Analyst", "Entry-level", "Small", 50000),
		record("Manager", "Senior-level", "Large", 200000),
		record("Manager", "Mid-level", "Medium", 140000),
		record("Scientist", "Senior-level", "Large", 170000),
		record("Scientist", "Entry-level", "Small", 90000),
	}
}
