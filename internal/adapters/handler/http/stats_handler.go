package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidereni/studylog/internal/core/analytics"
	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/services"
)

const maxHeatmapWindow = 366

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetOverview)
	r.GET("/stats/heatmap", h.GetHeatmap)
}

// GetOverview returns the aggregate snapshot. An optional date query pins
// the reference day, mainly for inspecting historical weeks.
func (h *StatsHandler) GetOverview(c *gin.Context) {
	now, ok := referenceDate(c)
	if !ok {
		return
	}

	stats := h.svc.Overview(c.Request.Context(), now)

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetHeatmap(c *gin.Context) {
	now, ok := referenceDate(c)
	if !ok {
		return
	}

	days := analytics.DefaultHeatmapWindow
	if d := c.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 || parsed > maxHeatmapWindow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 366"})
			return
		}
		days = parsed
	}

	entries := h.svc.Heatmap(c.Request.Context(), days, now)

	c.JSON(http.StatusOK, gin.H{
		"window_days": days,
		"entries":     entries,
	})
}

func referenceDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now().UTC(), true
	}

	parsed, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}
