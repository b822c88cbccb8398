package api

import (
	"cannedreply/internal/entity"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		ServiceError(c, err, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, entity.CategoryListResponse{Categories: categories})
}

func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	var req entity.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	category, err := h.categoryService.Create(ctx, req)
	if err != nil {
		ServiceError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, entity.Acknowledgment{Message: "category created", Data: category})
}

func (h *HTTPHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req entity.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	category, err := h.categoryService.Update(ctx, id, req)
	if err != nil {
		ServiceError(c, err, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, entity.Acknowledgment{Message: "category updated", Data: category})
}

func (h *HTTPHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.categoryService.Delete(ctx, id); err != nil {
		ServiceError(c, err, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, entity.Acknowledgment{Message: "category deleted"})
}
