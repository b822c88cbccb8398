package api

import (
	"cannedreply/internal/entity"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// 远程存储上传可能较慢
const exportTimeout = 30 * time.Second

// CreateExport 导出当前用户的模板库到对象存储
func (h *HTTPHandler) CreateExport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
	defer cancel()

	result, err := h.exportService.Export(ctx, userID)
	if err != nil {
		ServiceError(c, err, "failed to export library")
		return
	}

	c.JSON(http.StatusCreated, entity.Acknowledgment{
		Message: "library exported",
		Data: entity.ExportResponse{
			Key:       result.Key,
			URL:       h.publicURL(result.Key),
			Templates: result.Templates,
		},
	})
}
