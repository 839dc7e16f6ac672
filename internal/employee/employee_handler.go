package employee

import (
	"net/http"
	"strconv"

	employeeerrors "go-employee/internal/employee/errors"
	"go-employee/internal/shared/apperror"
	"go-employee/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const DeletedMessage = "The employee has been successfully deleted."

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("employee request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("employee request failed", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func positiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseID accepts any integer; ids that match no row are the service's
// concern.
func parseID(raw string, invalid error) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid
	}
	return id, nil
}

// GetByKey serves /employee/:key. A positive integer is looked up as an id,
// anything else as a last name.
func (h *Handler) GetByKey(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	var (
		resp EmployeeDTO
		err  error
	)
	if id, ok := positiveID(key); ok {
		h.logger.Debug("http get employee by id", zap.Int64("employee_id", id))
		resp, err = h.service.GetByID(ctx, id)
	} else {
		h.logger.Debug("http get employee by lastname", zap.String("lastname", key))
		resp, err = h.service.GetByLastname(ctx, key)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.logger.Debug("http get all employees")

	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Exists(c *gin.Context) {
	id, err := parseID(c.Param("employeeId"), employeeerrors.ErrInvalidEmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exists)
}

func (h *Handler) GetByDepartmentID(c *gin.Context) {
	departmentID, err := parseID(c.Param("departmentId"), employeeerrors.ErrInvalidDepartmentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http get employee by department", zap.Int64("department_id", departmentID))

	resp, err := h.service.GetByDepartmentID(c.Request.Context(), departmentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req EmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Debug("http create employee", zap.String("lastname", req.Lastname))

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c.Param("employeeId"), employeeerrors.ErrInvalidEmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http update employee", zap.Int64("employee_id", id))

	var req UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("employeeId"), employeeerrors.ErrInvalidEmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http delete employee", zap.Int64("employee_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, DeletedMessage)
}
