package statistics

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	stats := r.Group("/employee-statistics")
	{
		stats.GET("/total-employees", h.TotalEmployees)
		stats.GET("/employees-by-department", h.EmployeesByDepartment)
	}
}
