package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/dto"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/services"
	"github.com/rayysidd/mun/internal/utils"
	"go.uber.org/zap"
)

type SpeechHandler struct {
	speechService *services.SpeechService
	log           *zap.Logger
}

func NewSpeechHandler(speechService *services.SpeechService, log *zap.Logger) *SpeechHandler {
	return &SpeechHandler{
		speechService: speechService,
		log:           log,
	}
}

// SaveSpeech stores a generated speech for the caller
func (h *SpeechHandler) SaveSpeech(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type SaveSpeechRequest struct {
		Content string `json:"content"`
		Topic   string `json:"topic"`
		Country string `json:"country"`
		EventID string `json:"eventId"`
	}

	var req SaveSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	speech, err := h.speechService.SaveSpeech(c.Request.Context(), services.SaveSpeechInput{
		UserID:  userID,
		EventID: req.EventID,
		Topic:   req.Topic,
		Country: req.Country,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSpeechDTO(*speech))
}

// ListSpeeches lists the caller's speeches, optionally for one event
func (h *SpeechHandler) ListSpeeches(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	speeches, err := h.speechService.ListSpeeches(c.Request.Context(), userID, c.Query("eventId"), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpeechDTOs(speeches))
}

func (h *SpeechHandler) GetSpeech(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	speech, err := h.speechService.GetSpeech(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpeechDTO(*speech))
}

func (h *SpeechHandler) DeleteSpeech(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	speechID := c.Param("id")
	if err := h.speechService.DeleteSpeech(c.Request.Context(), speechID, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": speechID, "message": "Speech deleted successfully"})
}
