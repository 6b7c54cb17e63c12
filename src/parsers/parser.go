package parsers

import (
	"errors"
	"io"

	"github.com/username/salarypredictor/src/models"
)

var (
	// ErrMissingColumn is returned when the corpus header lacks a required column.
	ErrMissingColumn = errors.New("corpus is missing a required column")
	// ErrEmptyCorpus is returned when no usable record could be read.
	ErrEmptyCorpus = errors.New("corpus contains no valid records")
)

// Parser reads a historical salary corpus.
type Parser interface {
	Parse(file io.Reader) ([]models.HistoricalRecord, error)
}

// requiredColumns are the corpus columns every format must provide.
// salary_in_usd is derived and never read from the input.
var requiredColumns = []string{
	models.ColJobTitle,
	models.ColExperienceLevel,
	models.ColEmploymentType,
	models.ColWorkModel,
	models.ColEmployeeResidence,
	models.ColCompanyLocation,
	models.ColCompanySize,
	models.ColSalary,
	models.ColSalaryCurrency,
}

// columnAliases maps alternative header spellings onto canonical names.
var columnAliases = map[string]string{
	"work_model": models.ColWorkModel,
}
