package handlers

import (
	"errors"
	"net/http"

	"github.com/username/salarypredictor/src/services"
)

// User-facing prediction errors. Neither names the field or the cause.
const (
	msgInvalidInput     = "Invalid input. Please check your entries."
	msgModelUnavailable = "The salary model is not available. Please train the model first."
)

// classifyPredictionError maps a prediction failure to its status and
// message. Anything that is not an artifact problem counts as invalid input.
func classifyPredictionError(err error) (int, string) {
	if errors.Is(err, services.ErrArtifactUnavailable) {
		return http.StatusServiceUnavailable, msgModelUnavailable
	}
	return http.StatusBadRequest, msgInvalidInput
}
