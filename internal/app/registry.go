package app

import (
	"net/http"

	"go-employee/internal/department"
	"go-employee/internal/employee"
	"go-employee/internal/messaging/kafka"
	"go-employee/internal/shared/response"
	"go-employee/internal/statistics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, outboxRepo, rdb, logger)
	departmentService := department.NewService(gormDB, departmentRepo, employeeRepo, rdb, logger)
	statisticsService := statistics.NewService(employeeRepo, rdb, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	statisticsHandler := statistics.NewHandler(statisticsService)

	// --- Routes Registration ---
	router.GET("/healthz", healthz(gormDB))

	employee.RegisterRoutes(router.Group(""), employeeHandler, rdb, logger)

	api := router.Group("/api")
	{
		department.RegisterRoutes(api, departmentHandler, logger)
		statistics.RegisterRoutes(api, statisticsHandler)
	}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Message(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.Message(c, http.StatusOK, "ok")
	}
}
