package api

import (
	"cannedreply/internal/auth"
	"cannedreply/internal/config"
	"cannedreply/internal/model"
	"cannedreply/internal/service"
	"cannedreply/internal/storage"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	repo              model.Repository
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	authService     *service.AuthService
	templateService *service.TemplateService
	categoryService *service.CategoryService
	exportService   *service.ExportService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	validator := service.NewValidator()
	return &HTTPHandler{
		repo:              repo,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		authService:       service.NewAuthService(repo, authManager, validator, cfg.RegistrationEnabled),
		templateService:   service.NewTemplateService(repo, validator, cfg.TemplatePageSize),
		categoryService:   service.NewCategoryService(repo, validator),
		exportService:     service.NewExportService(repo, store),
	}, nil
}

// Health 数据库不可达时返回 503
func (h *HTTPHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("health check failed")
		ServiceUnavailable(c, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes 挂载健康检查与 /api 路由
func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", h.AuthStatus)
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())
	protected.GET("/dashboard", h.Dashboard)

	templates := protected.Group("/response-templates")
	templates.GET("", h.ListResponseTemplates)
	templates.POST("", h.CreateResponseTemplate)
	templates.GET("/:id", h.GetResponseTemplate)
	templates.PUT("/:id", h.UpdateResponseTemplate)
	templates.DELETE("/:id", h.DeleteResponseTemplate)
	templates.POST("/:id/copy", h.CopyResponseTemplate)

	categories := protected.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)

	protected.POST("/exports", h.CreateExport)
}
