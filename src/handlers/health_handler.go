package handlers

import (
	"net/http"

	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

type HealthHandler struct {
	predictionService services.PredictionService
	corpus            *services.Corpus
}

func NewHealthHandler(predictionService services.PredictionService, corpus *services.Corpus) *HealthHandler {
	return &HealthHandler{predictionService: predictionService, corpus: corpus}
}

// HandleHealth reports liveness. The process is healthy even without a
// model; model availability is reported separately.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, source := h.predictionService.Rates()
	resp := map[string]any{
		"status":        "ok",
		"model":         "available",
		"rateSource":    source,
		"corpusRecords": h.corpus.Len(),
	}
	if info, err := h.predictionService.ModelInfo(r.Context()); err != nil {
		resp["model"] = "unavailable"
	} else {
		resp["modelID"] = info.ModelID
	}
	utils.SendJSON(w, http.StatusOK, resp)
}
