package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

const maxPredictionBodyBytes = 64 * 1024

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(service services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: service}
}

// HandlePredict answers POST /api/predict.
func (h *PredictionHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var input models.PredictionInput
	r.Body = http.MaxBytesReader(w, r.Body, maxPredictionBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.FromContext(r.Context()).Warn("Invalid prediction request body", "error", err)
		utils.SendJSONError(w, msgInvalidInput, http.StatusBadRequest)
		return
	}

	result, err := h.predictionService.Predict(r.Context(), input)
	if err != nil {
		status, msg := classifyPredictionError(err)
		utils.SendJSONError(w, msg, status)
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// HandleGetModel answers GET /api/model with the current artifact summary.
func (h *PredictionHandler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	info, err := h.predictionService.ModelInfo(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrArtifactUnavailable) {
			utils.SendJSONError(w, msgModelUnavailable, http.StatusServiceUnavailable)
			return
		}
		logger.FromContext(r.Context()).Error("Error loading model info", "error", err)
		utils.SendJSONError(w, "An internal error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, http.StatusOK, info)
}

type ratesResponse struct {
	Base   string            `json:"base"`
	Source models.RateSource `json:"source"`
	Rates  models.RateTable  `json:"rates"`
}

// HandleGetRates answers GET /api/rates with the process-wide rate table.
func (h *PredictionHandler) HandleGetRates(w http.ResponseWriter, r *http.Request) {
	rates, source := h.predictionService.Rates()
	utils.SendJSON(w, http.StatusOK, ratesResponse{Base: "USD", Source: source, Rates: rates})
}
