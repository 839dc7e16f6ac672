package employee

import (
	"go-employee/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the employee endpoints at the root of r. rdb enables
// Idempotency-Key support on /add and may be nil.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	employees := r.Group("")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("/employees", handler.GetAll)
		employees.GET("/employee/:key", handler.GetByKey)
		employees.GET("/employee/exists/:employeeId", handler.Exists)
		employees.GET("/byDepartment/:departmentId", handler.GetByDepartmentID)

		if rdb != nil {
			employees.POST("/add", middleware.Idempotency(rdb), handler.Create)
		} else {
			employees.POST("/add", handler.Create)
		}

		employees.PUT("/:employeeId/update", handler.Update)
		employees.DELETE("/:employeeId/delete", handler.Delete)
	}
}
