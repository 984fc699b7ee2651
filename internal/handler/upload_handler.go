package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rosterscan/internal/service"
)

// UploadHandler handles roster upload endpoints.
type UploadHandler struct {
	uploads service.UploadService
	logger  *zap.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads service.UploadService, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{uploads: uploads, logger: logger}
}

// Create handles POST /api/v1/rosters/:roster_id/uploads
//
// Multipart form: one or more "images" files and an optional "backend".
// The job is queued and processed asynchronously.
func (h *UploadHandler) Create(c *gin.Context) {
	rosterID, err := uuid.Parse(c.Param("roster_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid roster ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart form with images is required")
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "images field is required")
		return
	}

	input := service.CreateJobInput{RosterID: rosterID, Backend: c.PostForm("backend")}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
			return
		}
		defer func() { _ = file.Close() }()
		input.Images = append(input.Images, service.ImageUpload{
			Filename: header.Filename,
			Size:     header.Size,
			File:     file,
		})
	}

	job, err := h.uploads.CreateJob(c.Request.Context(), input)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	RespondAccepted(c, job)
}

// GetByID handles GET /api/v1/uploads/:id
func (h *UploadHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	job, err := h.uploads.GetJob(c.Request.Context(), id)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	RespondOK(c, job)
}

// ListPlayers handles GET /api/v1/rosters/:roster_id/players
func (h *UploadHandler) ListPlayers(c *gin.Context) {
	rosterID, err := uuid.Parse(c.Param("roster_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid roster ID")
		return
	}

	players, err := h.uploads.ListPlayers(c.Request.Context(), rosterID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	RespondOK(c, players)
}
