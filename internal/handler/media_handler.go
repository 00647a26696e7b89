package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
)

// MediaHandler handles audio uploads for listening and speaking content.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadAudio godoc
// POST /api/v1/media/audio
// Accepts a multipart "file" field and returns the opaque reference to store
// as audio_reference. Bytes are written once and never inspected again.
func (h *MediaHandler) UploadAudio(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	reference, err := h.mediaService.SaveAudio(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.FailWithDetail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile, err.Error())
		case errors.Is(err, service.ErrFileTooLarge):
			response.FailWithDetail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reference": reference})
}
