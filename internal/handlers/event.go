package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/dto"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/services"
	"github.com/rayysidd/mun/internal/utils"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventService *services.EventService
	log          *zap.Logger
}

func NewEventHandler(eventService *services.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		log:          log,
	}
}

// CreateEvent creates an event with the caller as host and first delegate
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateEventRequest struct {
		EventName string `json:"eventName"`
		Committee string `json:"committee"`
		Agenda    string `json:"agenda"`
		Passcode  string `json:"passcode"`
		Country   string `json:"country"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, delegation, err := h.eventService.CreateEvent(c.Request.Context(), services.CreateEventInput{
		EventName: req.EventName,
		Committee: req.Committee,
		Agenda:    req.Agenda,
		Passcode:  req.Passcode,
		Country:   req.Country,
		HostID:    userID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateEventResponse{
		Message:    "Event created successfully.",
		Event:      dto.ToEventDTO(*event),
		Delegation: dto.ToDelegationDTO(*delegation),
	})
}

// JoinEvent joins an event by name and passcode
func (h *EventHandler) JoinEvent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type JoinEventRequest struct {
		EventName string `json:"eventName"`
		Passcode  string `json:"passcode"`
		Country   string `json:"country"`
	}

	var req JoinEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	delegation, err := h.eventService.JoinEvent(c.Request.Context(), services.JoinEventInput{
		EventName: req.EventName,
		Passcode:  req.Passcode,
		Country:   req.Country,
		UserID:    userID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinEventResponse{
		Message:    "Successfully joined event.",
		Delegation: dto.ToDelegationDTO(*delegation),
	})
}

// ListEvents returns the caller's delegations with their events
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	delegations, err := h.eventService.ListEventsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDelegationWithEventDTOs(delegations))
}

// GetEvent returns event details and the delegate roster
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	details, err := h.eventService.GetEvent(c.Request.Context(), c.Param("eventId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.EventDetailResponse{
		Event:     dto.ToEventDTO(*details.Event),
		Delegates: dto.ToDelegateDTOs(details.Delegates),
	})
}

func (h *EventHandler) GetDelegates(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	delegates, err := h.eventService.GetDelegates(c.Request.Context(), c.Param("eventId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDelegateDTOs(delegates))
}

func (h *EventHandler) LeaveEvent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.eventService.LeaveEvent(c.Request.Context(), c.Param("eventId"), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have successfully left the event."})
}

// AddSource adds a knowledge source to the event
func (h *EventHandler) AddSource(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type AddSourceRequest struct {
		Type    models.SourceType `json:"type"`
		Title   string            `json:"title"`
		Content string            `json:"content"`
	}

	var req AddSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	source, err := h.eventService.AddSource(c.Request.Context(), services.AddSourceInput{
		EventID: c.Param("eventId"),
		UserID:  userID,
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSourceDTO(*source))
}

// GetSources lists the event's sources, newest first. page and limit are optional.
func (h *EventHandler) GetSources(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sources, err := h.eventService.GetSources(c.Request.Context(), c.Param("eventId"), userID, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSourceDTOs(sources))
}
