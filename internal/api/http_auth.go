package api

import (
	"cannedreply/internal/entity"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.authService.Register(ctx, req)
	if err != nil {
		ServiceError(c, err, "failed to register user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		ServiceError(c, err, "failed to create session")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) AuthStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	status, err := h.authService.Status(ctx)
	if err != nil {
		ServiceError(c, err, "failed to check auth status")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *HTTPHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.authService.Me(ctx, userID)
	if err != nil {
		ServiceError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, summary)
}
