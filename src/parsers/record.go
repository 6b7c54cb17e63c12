package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/security/validation"
)

// buildRecord sanitizes raw column values into a HistoricalRecord. Text
// values go through the same sanitizer the prediction path uses.
func buildRecord(values map[string]string) (models.HistoricalRecord, error) {
	salary, err := parseSalary(values[models.ColSalary])
	if err != nil {
		return models.HistoricalRecord{}, err
	}
	rec := models.HistoricalRecord{
		JobTitle:          validation.SanitizeText(values[models.ColJobTitle]),
		ExperienceLevel:   validation.SanitizeText(values[models.ColExperienceLevel]),
		EmploymentType:    validation.SanitizeText(values[models.ColEmploymentType]),
		WorkModel:         validation.SanitizeText(values[models.ColWorkModel]),
		EmployeeResidence: validation.SanitizeText(values[models.ColEmployeeResidence]),
		CompanyLocation:   validation.SanitizeText(values[models.ColCompanyLocation]),
		CompanySize:       validation.SanitizeText(values[models.ColCompanySize]),
		Salary:            salary,
		SalaryCurrency:    validation.SanitizeCurrencyCode(values[models.ColSalaryCurrency]),
	}
	columns := models.FeatureColumns()
	for i, v := range rec.Features() {
		if v == "" {
			return models.HistoricalRecord{}, fmt.Errorf("%s is empty", columns[i])
		}
	}
	if rec.SalaryCurrency == "" {
		return models.HistoricalRecord{}, fmt.Errorf("salary_currency is empty")
	}
	return rec, nil
}

func parseSalary(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("salary is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid salary %q: %w", s, err)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("salary must be a positive number, got %q", s)
	}
	return v, nil
}

func canonicalColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}
