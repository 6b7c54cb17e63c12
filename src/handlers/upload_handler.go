package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/parsers"
	"github.com/username/salarypredictor/src/security/validation"
	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

// uploadWriteTimeout replaces the server-wide write deadline for a retrain,
// which runs outside the request timeout group.
const uploadWriteTimeout = 10 * time.Minute

type UploadHandler struct {
	trainingService services.TrainingService
	maxUploadSize   int64
}

func NewUploadHandler(service services.TrainingService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		trainingService: service,
		maxUploadSize:   maxUploadSize,
	}
}

// HandleUpload replaces the corpus with the uploaded file and retrains.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	maxMB := h.maxUploadSize / (1024 * 1024)

	if err := http.NewResponseController(w).SetWriteDeadline(time.Now().Add(uploadWriteTimeout)); err != nil {
		log.Warn("Could not extend write deadline for upload", "error", err)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadSize)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", maxMB), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadSize {
		log.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", h.maxUploadSize)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", maxMB), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		log.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if format == "" {
		format = parsers.FormatFromFilename(fileHeader.Filename)
	}
	log.Info("Processing corpus upload", "filename", fileHeader.Filename, "format", format,
		"clientType", clientContentType, "detectedType", detectedContentType)

	records, err := h.trainingService.LoadCorpus(file, format)
	if err != nil {
		h.sendUploadError(w, r, fileHeader.Filename, err)
		return
	}
	report, err := h.trainingService.Train(r.Context(), records)
	if err != nil {
		h.sendUploadError(w, r, fileHeader.Filename, err)
		return
	}
	utils.SendJSON(w, http.StatusOK, report)
}

func (h *UploadHandler) sendUploadError(w http.ResponseWriter, r *http.Request, filename string, err error) {
	log := logger.FromContext(r.Context())
	switch {
	case errors.Is(err, services.ErrParsingFailed):
		log.Warn("Upload processing failed due to parsing errors", "filename", filename, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error parsing corpus file: %v", err), http.StatusBadRequest)
	case errors.Is(err, services.ErrProcessingFailed):
		log.Error("Upload processing failed during training", "filename", filename, "error", err)
		utils.SendJSONError(w, "Error training the model on the uploaded corpus. Please try again later.", http.StatusInternalServerError)
	default:
		log.Error("Internal error processing upload", "filename", filename, "error", err)
		utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
	}
}
