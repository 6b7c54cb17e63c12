package services

import (
	"testing"
	"time"

	"github.com/username/salarypredictor/src/models"
)

func TestSalaryByTitle(t *testing.T) {
	corpus := NewCorpus()
	corpus.Replace(sampleCorpus())
	svc := NewChartService(corpus, []string{"Entry-level", "Mid-level", "Senior-level"}, time.Minute)

	bars, version := svc.SalaryByTitle()
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
	wantOrder := []string{"Engineer", "Manager", "Scientist", "Analyst"}
	if len(bars) != len(wantOrder) {
		t.Fatalf("got %d bars, want %d", len(bars), len(wantOrder))
	}
	for i, title := range wantOrder {
		if bars[i].JobTitle != title {
			t.Errorf("bars[%d] = %s, want %s", i, bars[i].JobTitle, title)
		}
	}
	if bars[0].TotalUSD != 380000 || bars[0].Count != 3 {
		t.Errorf("Engineer bar = %+v", bars[0])
	}
	if bars[1].MeanUSD != 170000 {
		t.Errorf("Manager mean = %v, want 170000", bars[1].MeanUSD)
	}
}

func TestSalaryByExperience(t *testing.T) {
	corpus := NewCorpus()
	recs := append(sampleCorpus(), record("Director", "Executive", "Large", 300000))
	corpus.Replace(recs)
	svc := NewChartService(corpus, []string{"Entry-level", "Mid-level", "Senior-level"}, time.Minute)

	boxes, _ := svc.SalaryByExperience()
	wantOrder := []string{"Entry-level", "Mid-level", "Senior-level", "Executive"}
	if len(boxes) != len(wantOrder) {
		t.Fatalf("got %d boxes, want %d", len(boxes), len(wantOrder))
	}
	for i, level := range wantOrder {
		if boxes[i].ExperienceLevel != level {
			t.Errorf("boxes[%d] = %s, want %s", i, boxes[i].ExperienceLevel, level)
		}
	}

	// Senior-level: 110000, 170000, 180000, 200000
	senior := boxes[2]
	want := models.ExperienceSalaryRange{
		ExperienceLevel: "Senior-level",
		Min:             110000,
		Q1:              155000,
		Median:          175000,
		Q3:              185000,
		Max:             200000,
		Count:           4,
	}
	if senior != want {
		t.Errorf("senior box = %+v, want %+v", senior, want)
	}
}

func TestChartCache_FollowsCorpusVersion(t *testing.T) {
	corpus := NewCorpus()
	corpus.Replace([]models.HistoricalRecord{record("Engineer", "Mid-level", "Medium", 100)})
	svc := NewChartService(corpus, nil, time.Minute)

	first, v1 := svc.SalaryByTitle()
	if first[0].TotalUSD != 100 {
		t.Fatalf("unexpected first result %+v", first)
	}

	corpus.Replace([]models.HistoricalRecord{record("Engineer", "Mid-level", "Medium", 250)})
	second, v2 := svc.SalaryByTitle()
	if v2 == v1 {
		t.Fatal("version did not change after Replace")
	}
	if second[0].TotalUSD != 250 {
		t.Errorf("stale chart served after corpus change: %+v", second)
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1}, {0.25, 1.75}, {0.5, 2.5}, {0.75, 3.25}, {1, 4},
	}
	for _, tt := range tests {
		if got := quantile(values, tt.q); got != tt.want {
			t.Errorf("quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
	if got := quantile([]float64{7}, 0.5); got != 7 {
		t.Errorf("single value quantile = %v", got)
	}
}
