package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/services"
	"go.uber.org/zap"
)

// ChatHandler exposes the text generation proxy.
type ChatHandler struct {
	aiService *services.AIService
	log       *zap.Logger
}

func NewChatHandler(aiService *services.AIService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		aiService: aiService,
		log:       log,
	}
}

type chatRequest struct {
	Topic     string `json:"topic"`
	Committee string `json:"committee"`
	Country   string `json:"country"`
	Type      string `json:"type"`
	Context   string `json:"context"`
}

// Chat answers with {"response": text}
func (h *ChatHandler) Chat(c *gin.Context) {
	h.generate(c, "response", h.aiService.Chat)
}

// Speech answers with {"speech": text}
func (h *ChatHandler) Speech(c *gin.Context) {
	h.generate(c, "speech", h.aiService.Speech)
}

// Resolution answers with {"resolution": text}
func (h *ChatHandler) Resolution(c *gin.Context) {
	h.generate(c, "resolution", h.aiService.Resolution)
}

func (h *ChatHandler) generate(c *gin.Context, key string, gen func(context.Context, services.ChatInput) (string, error)) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	text, err := gen(c.Request.Context(), services.ChatInput{
		Topic:     req.Topic,
		Committee: req.Committee,
		Country:   req.Country,
		Type:      req.Type,
		Context:   req.Context,
	})
	if err != nil {
		if apierrors.KindOf(err) == apierrors.KindUpstream {
			h.log.Warn("text generation failed", zap.Error(err), zap.String("endpoint", key))
		}
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{key: text})
}
