package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/services"
)

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

type createSessionRequest struct {
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Content   string `json:"content"`
	Notes     string `json:"notes"`
}

type updateSessionRequest struct {
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"time_slot"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Content   string `json:"content"`
	Notes     string `json:"notes"`
	Version   int    `json:"version"`
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.List)
		sessions.GET("/:id", h.GetByID)
		sessions.PUT("/:id", h.Update)
		sessions.DELETE("/:id", h.Delete)
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateSessionInput{
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Content:   req.Content,
		Notes:     req.Notes,
	}

	session, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetByID(c *gin.Context) {
	session, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	if from == "" && to == "" {
		list, err := h.svc.List(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	if to == "" {
		to = analytics.FormatDate(time.Now().UTC())
	}
	if from == "" {
		from = "0000-00-00"
	}

	if !validDateParam(from) || !validDateParam(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	list, err := h.svc.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *SessionHandler) Update(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateSessionInput{
		ID:        c.Param("id"),
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Content:   req.Content,
		Notes:     req.Notes,
		Version:   req.Version,
	}

	session, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func validDateParam(date string) bool {
	if date == "0000-00-00" {
		return true
	}
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrSessionConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please reload",
		})

	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidClock),
		errors.Is(err, domain.ErrInvalidTimeSlot),
		errors.Is(err, domain.ErrNonPositiveDuration),
		errors.Is(err, domain.ErrContentTooLong),
		errors.Is(err, domain.ErrNotesTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidBackup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidAccessKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access key"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
