package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/salarypredictor/src/models"
)

const (
	ckSalaryByTitle      = "chart_salary_by_title_v%d"
	ckSalaryByExperience = "chart_salary_by_experience_v%d"
)

type chartServiceImpl struct {
	corpus     *Corpus
	levelOrder map[string]int
	cache      *cache.Cache
}

// NewChartService aggregates corpus. levelOrder lists experience levels in
// display order; other levels follow alphabetically.
func NewChartService(corpus *Corpus, levelOrder []string, ttl time.Duration) ChartService {
	order := make(map[string]int, len(levelOrder))
	for i, l := range levelOrder {
		order[l] = i
	}
	return &chartServiceImpl{
		corpus:     corpus,
		levelOrder: order,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// SalaryByTitle sums salary_in_usd per job title, largest total first.
func (s *chartServiceImpl) SalaryByTitle() ([]models.TitleSalary, uint64) {
	records, version := s.corpus.Snapshot()
	key := fmt.Sprintf(ckSalaryByTitle, version)
	if cached, found := s.cache.Get(key); found {
		return cached.([]models.TitleSalary), version
	}

	byTitle := make(map[string]*models.TitleSalary)
	for _, r := range records {
		agg, ok := byTitle[r.JobTitle]
		if !ok {
			agg = &models.TitleSalary{JobTitle: r.JobTitle}
			byTitle[r.JobTitle] = agg
		}
		agg.TotalUSD += r.SalaryInUSD
		agg.Count++
	}

	out := make([]models.TitleSalary, 0, len(byTitle))
	for _, agg := range byTitle {
		agg.MeanUSD = agg.TotalUSD / float64(agg.Count)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalUSD != out[j].TotalUSD {
			return out[i].TotalUSD > out[j].TotalUSD
		}
		return out[i].JobTitle < out[j].JobTitle
	})

	s.cache.Set(key, out, cache.DefaultExpiration)
	return out, version
}

// SalaryByExperience computes a five-number summary of salary_in_usd per
// experience level.
func (s *chartServiceImpl) SalaryByExperience() ([]models.ExperienceSalaryRange, uint64) {
	records, version := s.corpus.Snapshot()
	key := fmt.Sprintf(ckSalaryByExperience, version)
	if cached, found := s.cache.Get(key); found {
		return cached.([]models.ExperienceSalaryRange), version
	}

	byLevel := make(map[string][]float64)
	for _, r := range records {
		byLevel[r.ExperienceLevel] = append(byLevel[r.ExperienceLevel], r.SalaryInUSD)
	}

	out := make([]models.ExperienceSalaryRange, 0, len(byLevel))
	for level, values := range byLevel {
		sort.Float64s(values)
		out = append(out, models.ExperienceSalaryRange{
			ExperienceLevel: level,
			Min:             values[0],
			Q1:              quantile(values, 0.25),
			Median:          quantile(values, 0.5),
			Q3:              quantile(values, 0.75),
			Max:             values[len(values)-1],
			Count:           len(values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iKnown := s.levelOrder[out[i].ExperienceLevel]
		oj, jKnown := s.levelOrder[out[j].ExperienceLevel]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i].ExperienceLevel < out[j].ExperienceLevel
		}
	})

	s.cache.Set(key, out, cache.DefaultExpiration)
	return out, version
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
