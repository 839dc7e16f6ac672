package department

import (
	"go-employee/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	departments := r.Group("/departments")
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.GET("", h.GetAll)
		departments.POST("", h.Create)
		departments.GET("/:id", h.GetByID)
		departments.DELETE("/:id", h.Delete)
	}
}
