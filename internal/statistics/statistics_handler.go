package statistics

import (
	"net/http"

	"go-employee/internal/shared/apperror"
	"go-employee/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) TotalEmployees(c *gin.Context) {
	total, err := h.service.GetTotalEmployees(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}
	response.Success(c, http.StatusOK, total)
}

func (h *Handler) EmployeesByDepartment(c *gin.Context) {
	counts, err := h.service.GetEmployeesByDepartment(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}
	response.Success(c, http.StatusOK, counts)
}
