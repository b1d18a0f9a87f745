package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidereni/studylog/internal/core/services"
)

// Imports above ~2 MB are certainly not a backup of this dataset.
const maxImportSize = 2 << 20

type BackupHandler struct {
	svc *services.BackupService
}

func NewBackupHandler(svc *services.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func (h *BackupHandler) RegisterRoutes(r *gin.RouterGroup) {
	backup := r.Group("/backup")
	{
		backup.GET("/export", h.Export)
		backup.POST("/import", h.Import)
	}
}

func (h *BackupHandler) Export(c *gin.Context) {
	backup, err := h.svc.Export(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="studylog-backup.json"`)
	c.JSON(http.StatusOK, backup)
}

func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if err := h.svc.Import(c.Request.Context(), raw); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}
