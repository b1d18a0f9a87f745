package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidereni/studylog/internal/core/services"
)

type AchievementHandler struct {
	svc *services.AchievementService
}

func NewAchievementHandler(svc *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/achievements", h.List)
}

// List re-evaluates the catalog against current statistics, persisting any
// new unlocks, and returns the merged badge list. Newly unlocked badges are
// surfaced separately so the UI can celebrate them once.
func (h *AchievementHandler) List(c *gin.Context) {
	badges, newlyUnlocked, err := h.svc.Evaluate(c.Request.Context(), time.Now().UTC())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badges":         badges,
		"newly_unlocked": newlyUnlocked,
	})
}
