package handlers

import (
	"context"
	"embed"
	"html/template"
	"math"
	"net/http"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type PageHandler struct {
	predictionService services.PredictionService
	chartService      services.ChartService
	display           config.DisplayConfig
}

func NewPageHandler(predictionService services.PredictionService, chartService services.ChartService, display config.DisplayConfig) *PageHandler {
	return &PageHandler{
		predictionService: predictionService,
		chartService:      chartService,
		display:           display,
	}
}

type titleBar struct {
	Title    string
	Total    string
	Count    int
	WidthPct float64
}

type experienceBox struct {
	Level                    string
	Min, Q1, Median, Q3, Max string
	Count                    int
	MinPct, WhiskerPct       float64
	Q1Pct, BoxPct, MedianPct float64
}

type pageData struct {
	Display         config.DisplayConfig
	Input           models.PredictionInput
	Result          *models.PredictionResult
	Error           string
	RateSource      models.RateSource
	JobTitles       []string
	TitleBars       []titleBar
	ExperienceBoxes []experienceBox
}

// HandleIndex renders the empty form with both charts.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := h.newPageData(models.PredictionInput{})
	h.render(r.Context(), w, http.StatusOK, data)
}

// HandlePredict handles the form submission and re-renders the page with
// either the prediction or an inline error.
func (h *PageHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to parse prediction form", "error", err)
		data := h.newPageData(models.PredictionInput{})
		data.Error = msgInvalidInput
		h.render(r.Context(), w, http.StatusBadRequest, data)
		return
	}

	input := models.PredictionInput{
		JobTitle:          r.PostFormValue("job_title"),
		ExperienceLevel:   r.PostFormValue("experience_level"),
		EmploymentType:    r.PostFormValue("employment_type"),
		WorkModel:         r.PostFormValue("work_model"),
		EmployeeResidence: r.PostFormValue("employee_residence"),
		CompanyLocation:   r.PostFormValue("company_location"),
		CompanySize:       r.PostFormValue("company_size"),
		TargetCurrency:    r.PostFormValue("target_currency"),
	}
	data := h.newPageData(input)

	result, err := h.predictionService.Predict(r.Context(), input)
	if err != nil {
		status, msg := classifyPredictionError(err)
		data.Error = msg
		h.render(r.Context(), w, status, data)
		return
	}
	data.Result = result
	h.render(r.Context(), w, http.StatusOK, data)
}

func (h *PageHandler) newPageData(input models.PredictionInput) *pageData {
	_, source := h.predictionService.Rates()
	data := &pageData{
		Display:    h.display,
		Input:      input,
		RateSource: source,
	}

	bars, _ := h.chartService.SalaryByTitle()
	var maxTotal float64
	for _, b := range bars {
		maxTotal = math.Max(maxTotal, b.TotalUSD)
	}
	for _, b := range bars {
		data.JobTitles = append(data.JobTitles, b.JobTitle)
		data.TitleBars = append(data.TitleBars, titleBar{
			Title:    b.JobTitle,
			Total:    utils.FormatMoney(b.TotalUSD, "USD"),
			Count:    b.Count,
			WidthPct: percentOf(b.TotalUSD, 0, maxTotal),
		})
	}

	boxes, _ := h.chartService.SalaryByExperience()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range boxes {
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}
	for _, b := range boxes {
		minPct := percentOf(b.Min, lo, hi)
		q1Pct := percentOf(b.Q1, lo, hi)
		data.ExperienceBoxes = append(data.ExperienceBoxes, experienceBox{
			Level:      b.ExperienceLevel,
			Min:        utils.FormatMoney(b.Min, "USD"),
			Q1:         utils.FormatMoney(b.Q1, "USD"),
			Median:     utils.FormatMoney(b.Median, "USD"),
			Q3:         utils.FormatMoney(b.Q3, "USD"),
			Max:        utils.FormatMoney(b.Max, "USD"),
			Count:      b.Count,
			MinPct:     minPct,
			WhiskerPct: utils.RoundFloat(percentOf(b.Max, lo, hi)-minPct, 2),
			Q1Pct:      q1Pct,
			BoxPct:     utils.RoundFloat(percentOf(b.Q3, lo, hi)-q1Pct, 2),
			MedianPct:  percentOf(b.Median, lo, hi),
		})
	}
	return data
}

// percentOf places v on a 0..100 scale between lo and hi.
func percentOf(v, lo, hi float64) float64 {
	if hi <= lo {
		return 100
	}
	return utils.RoundFloat((v-lo)/(hi-lo)*100, 2)
}

func (h *PageHandler) render(ctx context.Context, w http.ResponseWriter, status int, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.FromContext(ctx).Error("Error rendering page", "error", err)
	}
}
