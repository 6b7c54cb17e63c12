package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

type ChartHandler struct {
	chartService services.ChartService
}

func NewChartHandler(service services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: service}
}

func (h *ChartHandler) HandleGetSalaryByTitle(w http.ResponseWriter, r *http.Request) {
	bars, _ := h.chartService.SalaryByTitle()
	if bars == nil {
		bars = []models.TitleSalary{}
	}
	sendWithETag(w, r, "salary-by-title", bars)
}

func (h *ChartHandler) HandleGetSalaryByExperience(w http.ResponseWriter, r *http.Request) {
	boxes, _ := h.chartService.SalaryByExperience()
	if boxes == nil {
		boxes = []models.ExperienceSalaryRange{}
	}
	sendWithETag(w, r, "salary-by-experience", boxes)
}

// sendWithETag writes data as JSON, or 304 when the client already holds it.
func sendWithETag(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	log := logger.FromContext(r.Context())
	currentETag, etagErr := utils.GenerateETag(data)
	if etagErr != nil {
		log.Error("Failed to generate ETag for chart data", "chart", name, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache")
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		if clientETag := r.Header.Get("If-None-Match"); utils.ETagMatches(clientETag, quotedETag) {
			log.Debug("ETag match for chart data", "chart", name, "etag", currentETag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else {
		log.Warn("Proceeding without ETag check due to ETag generation error or empty ETag", "chart", name)
	}
	utils.SendJSON(w, http.StatusOK, data)
}
