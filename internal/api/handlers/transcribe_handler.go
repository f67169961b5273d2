package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lisanhq/lisan/internal/services"
	"github.com/lisanhq/lisan/internal/utils"
)

type TranscribeHandler struct {
	svc services.TranscribeService
}

func NewTranscribeHandler(svc services.TranscribeService) *TranscribeHandler {
	return &TranscribeHandler{svc: svc}
}

type TranscribeURLRequest struct {
	YoutubeURL string `json:"youtube_url" binding:"required"`
	Language   string `json:"language"` // ex: "id" or "en"; empty = configured default
}

// FromURL handles POST /transcribe.
func (h *TranscribeHandler) FromURL(c *gin.Context) {
	var req TranscribeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscribeHandler.FromURL", "invalid request body", err))
		return
	}

	summary, err := h.svc.FromURL(c.Request.Context(), req.YoutubeURL, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// FromFile handles POST /transcribe/file (multipart: file + optional language).
func (h *TranscribeHandler) FromFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TranscribeHandler.FromFile", "missing multipart field 'file'", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "TranscribeHandler.FromFile", "failed to open upload", err))
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	language := c.PostForm("language")

	summary, err := h.svc.FromUpload(c.Request.Context(), fh.Filename, contentType, f, language)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
