package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/security/validation"
	"github.com/username/salarypredictor/src/services"
)

type ExportHandler struct {
	corpus *services.Corpus
}

func NewExportHandler(corpus *services.Corpus) *ExportHandler {
	return &ExportHandler{corpus: corpus}
}

var exportHeader = []string{
	models.ColJobTitle,
	models.ColExperienceLevel,
	models.ColEmploymentType,
	models.ColWorkModel,
	models.ColEmployeeResidence,
	models.ColCompanyLocation,
	models.ColCompanySize,
	models.ColSalary,
	models.ColSalaryCurrency,
	models.ColSalaryInUSD,
}

// HandleExportCSV streams the normalized corpus as CSV.
func (h *ExportHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, version := h.corpus.Snapshot()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="salary_corpus.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		logger.FromContext(r.Context()).Error("Error writing CSV export header", "error", err)
		return
	}
	for _, rec := range records {
		row := []string{
			validation.SanitizeForFormulaInjection(rec.JobTitle),
			validation.SanitizeForFormulaInjection(rec.ExperienceLevel),
			validation.SanitizeForFormulaInjection(rec.EmploymentType),
			validation.SanitizeForFormulaInjection(rec.WorkModel),
			validation.SanitizeForFormulaInjection(rec.EmployeeResidence),
			validation.SanitizeForFormulaInjection(rec.CompanyLocation),
			validation.SanitizeForFormulaInjection(rec.CompanySize),
			strconv.FormatFloat(rec.Salary, 'f', -1, 64),
			validation.SanitizeForFormulaInjection(rec.SalaryCurrency),
			strconv.FormatFloat(rec.SalaryInUSD, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			logger.FromContext(r.Context()).Error("Error writing CSV export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.FromContext(r.Context()).Error("Error flushing CSV export", "error", err)
		return
	}
	logger.FromContext(r.Context()).Info("Corpus exported", "records", len(records), "version", version)
}
