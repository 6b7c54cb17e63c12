package model

import (
	"context"
	"testing"

	"github.com/username/salarypredictor/src/ml"
	"github.com/username/salarypredictor/src/models"
)

func fittedArtifact(t *testing.T) *Artifact {
	t.Helper()
	params := ml.DefaultParams()
	params.NEstimators = 5

	recs := []models.HistoricalRecord{
		{JobTitle: "Engineer", ExperienceLevel: "Mid-level", EmploymentType: "Full-time", WorkModel: "Remote",
			EmployeeResidence: "US", CompanyLocation: "US", CompanySize: "Medium", SalaryInUSD: 100000},
		{JobTitle: "Analyst", ExperienceLevel: "Entry-level", EmploymentType: "Part-time", WorkModel: "Hybrid",
			EmployeeResidence: "IN", CompanyLocation: "IN", CompanySize: "Small", SalaryInUSD: 20000},
	}
	rows := make([][]string, len(recs))
	y := make([]float64, len(recs))
	for i, r := range recs {
		rows[i] = r.Features()
		y[i] = r.SalaryInUSD
	}

	p := ml.NewPipeline(models.FeatureColumns(), params)
	if err := p.Fit(context.Background(), rows, y, nil); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	r2 := 0.5
	return NewArtifact(p, 2, 0, &models.HoldoutMetrics{Samples: 1, MAE: 1, RMSE: 1, R2: &r2})
}
