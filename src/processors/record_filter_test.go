package processors

import (
	"testing"

	"github.com/username/salarypredictor/src/models"
)

func TestNewRecordFilter_EmptyKeepsEverything(t *testing.T) {
	f, err := NewRecordFilter("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Fatal("expected nil filter for empty expression")
	}
	recs := []models.HistoricalRecord{{JobTitle: "A"}, {JobTitle: "B"}}
	if got := f.Apply(recs); len(got) != 2 {
		t.Errorf("Apply on nil filter kept %d records, want 2", len(got))
	}
}

func TestNewRecordFilter_Errors(t *testing.T) {
	for _, expr := range []string{
		"salary_in_usd >",
		"salary_in_usd + 1.0",
		"unknown_column == 'x'",
	} {
		if _, err := NewRecordFilter(expr); err == nil {
			t.Errorf("NewRecordFilter(%q) expected error", expr)
		}
	}
}

func TestRecordFilter_Apply(t *testing.T) {
	f, err := NewRecordFilter(`salary_in_usd >= 50000.0 && work_model != "Hybrid"`)
	if err != nil {
		t.Fatalf("NewRecordFilter: %v", err)
	}
	recs := []models.HistoricalRecord{
		{JobTitle: "A", WorkModel: "Remote", SalaryInUSD: 60000},
		{JobTitle: "B", WorkModel: "Hybrid", SalaryInUSD: 90000},
		{JobTitle: "C", WorkModel: "On-site", SalaryInUSD: 20000},
		{JobTitle: "D", WorkModel: "On-site", SalaryInUSD: 50000},
	}
	got := f.Apply(recs)
	if len(got) != 2 || got[0].JobTitle != "A" || got[1].JobTitle != "D" {
		t.Errorf("Apply kept %+v, want A and D", got)
	}
	if f.String() == "" {
		t.Error("String() should return the expression")
	}
}
