package processors

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
)

// RecordFilter selects normalized records with a CEL boolean expression over
// the record's columns, e.g.
//
//	salary_in_usd > 1000.0 && employment_type == "Full-time"
type RecordFilter struct {
	expr    string
	program cel.Program
}

// NewRecordFilter compiles expr. An empty expression yields a nil filter,
// which keeps every record.
func NewRecordFilter(expr string) (*RecordFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := cel.NewEnv(
		cel.Variable(models.ColJobTitle, cel.StringType),
		cel.Variable(models.ColExperienceLevel, cel.StringType),
		cel.Variable(models.ColEmploymentType, cel.StringType),
		cel.Variable("work_model", cel.StringType),
		cel.Variable(models.ColEmployeeResidence, cel.StringType),
		cel.Variable(models.ColCompanyLocation, cel.StringType),
		cel.Variable(models.ColCompanySize, cel.StringType),
		cel.Variable(models.ColSalary, cel.DoubleType),
		cel.Variable(models.ColSalaryCurrency, cel.StringType),
		cel.Variable(models.ColSalaryInUSD, cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("creating filter environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compiling training filter %q: %w", expr, iss.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("training filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast, cel.CostLimit(100000))
	if err != nil {
		return nil, fmt.Errorf("building training filter program: %w", err)
	}
	return &RecordFilter{expr: expr, program: prg}, nil
}

func (f *RecordFilter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match evaluates the filter for one record.
func (f *RecordFilter) Match(r models.HistoricalRecord) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, _, err := f.program.Eval(map[string]any{
		models.ColJobTitle:          r.JobTitle,
		models.ColExperienceLevel:   r.ExperienceLevel,
		models.ColEmploymentType:    r.EmploymentType,
		"work_model":                r.WorkModel,
		models.ColEmployeeResidence: r.EmployeeResidence,
		models.ColCompanyLocation:   r.CompanyLocation,
		models.ColCompanySize:       r.CompanySize,
		models.ColSalary:            r.Salary,
		models.ColSalaryCurrency:    r.SalaryCurrency,
		models.ColSalaryInUSD:       r.SalaryInUSD,
	})
	if err != nil {
		return false, err
	}
	match, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("training filter returned %T, expected bool", out.Value())
	}
	return match, nil
}

// Apply keeps the records the filter matches. Records the expression fails
// on are skipped and logged.
func (f *RecordFilter) Apply(records []models.HistoricalRecord) []models.HistoricalRecord {
	if f == nil {
		return records
	}
	kept := make([]models.HistoricalRecord, 0, len(records))
	for i, r := range records {
		ok, err := f.Match(r)
		if err != nil {
			logger.L.Warn("Training filter failed on record, skipping", "row", i, "filter", f.expr, "error", err)
			continue
		}
		if ok {
			kept = append(kept, r)
		}
	}
	logger.L.Info("Training filter applied", "filter", f.expr, "before", len(records), "after", len(kept))
	return kept
}
