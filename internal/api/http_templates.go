package api

import (
	"cannedreply/internal/entity"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Dashboard 模板列表页的数据：分页模板、分类、类型与回显的过滤条件
func (h *HTTPHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	query, ok := bindTemplateQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	dashboard, err := h.templateService.Dashboard(ctx, userID, query)
	if err != nil {
		ServiceError(c, err, "failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *HTTPHandler) ListResponseTemplates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	query, ok := bindTemplateQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.templateService.List(ctx, userID, query)
	if err != nil {
		ServiceError(c, err, "failed to list response templates")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *HTTPHandler) GetResponseTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.templateService.Get(ctx, userID, id)
	if err != nil {
		ServiceError(c, err, "failed to load response template")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *HTTPHandler) CreateResponseTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req entity.ResponseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.templateService.Create(ctx, userID, req)
	if err != nil {
		ServiceError(c, err, "failed to create response template")
		return
	}
	c.JSON(http.StatusCreated, entity.Acknowledgment{Message: "response template created", Data: item})
}

func (h *HTTPHandler) UpdateResponseTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req entity.ResponseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.templateService.Update(ctx, userID, id, req)
	if err != nil {
		ServiceError(c, err, "failed to update response template")
		return
	}
	c.JSON(http.StatusOK, entity.Acknowledgment{Message: "response template updated", Data: item})
}

func (h *HTTPHandler) DeleteResponseTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.templateService.Delete(ctx, userID, id); err != nil {
		ServiceError(c, err, "failed to delete response template")
		return
	}
	c.JSON(http.StatusOK, entity.Acknowledgment{Message: "response template deleted"})
}

// CopyResponseTemplate 返回模板内容，并把使用次数加一
func (h *HTTPHandler) CopyResponseTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	copied, err := h.templateService.Copy(ctx, userID, id)
	if err != nil {
		ServiceError(c, err, "failed to copy response template")
		return
	}
	c.JSON(http.StatusOK, copied)
}

// bindTemplateQuery 绑定查询参数，未知字段忽略
func bindTemplateQuery(c *gin.Context) (entity.ResponseTemplateQuery, bool) {
	var query entity.ResponseTemplateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return query, false
	}
	return query, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
