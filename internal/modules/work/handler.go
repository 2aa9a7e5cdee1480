package work

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/domain"
	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
	"opsdesk/internal/repository"
)

// Handler handles work HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	works := r.Group("/works")
	{
		works.POST("", h.CreateWork)
		works.GET("", h.ListWorks)
		works.GET("/:id", h.GetWork)
		works.PUT("/:id", h.UpdateWork)
		works.PATCH("/:id/status", h.UpdateStatus)
		works.DELETE("/:id", h.DeleteWork)
	}
}

// CreateWork handles POST /api/v1/works
// @Summary Create work
// @Tags Works
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWorkRequest true "Work data"
// @Success 201 {object} response.Response{data=domain.Work}
// @Failure 422 {object} response.Response
// @Router /works [post]
func (h *Handler) CreateWork(c *gin.Context) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	work, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "INVALID_REFERENCE", "Unknown customer or service")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, work)
}

// GetWork handles GET /api/v1/works/:id
func (h *Handler) GetWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	work, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrWorkNotFound {
			response.Error(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, work)
}

// ListWorks handles GET /api/v1/works
// @Summary List works
// @Tags Works
// @Produce json
// @Security BearerAuth
// @Param customer_id query int false "Filter by customer"
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed, cancelled)
// @Param assigned_to query int false "Filter by assignee"
// @Success 200 {object} response.Response{data=WorkListResponse}
// @Router /works [get]
func (h *Handler) ListWorks(c *gin.Context) {
	var f repository.WorkFilter

	if v := c.Query("customer_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CustomerID = &id
		}
	}
	if v := c.Query("status"); v != "" {
		status := domain.WorkStatus(v)
		f.Status = &status
	}
	if v := c.Query("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AssignedTo = &id
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	works, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, WorkListResponse{Works: works, Total: total})
}

// UpdateWork handles PUT /api/v1/works/:id
func (h *Handler) UpdateWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	work, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrWorkNotFound:
			response.Error(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		case ErrTerminalStatus:
			response.Error(c, http.StatusConflict, "TERMINAL_STATUS", "Completed or cancelled works cannot be edited")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, work)
}

// UpdateStatus handles PATCH /api/v1/works/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateWorkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch err {
		case ErrWorkNotFound:
			response.Error(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		case ErrTerminalStatus:
			response.Error(c, http.StatusConflict, "TERMINAL_STATUS", "Completed or cancelled works cannot change status")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// DeleteWork handles DELETE /api/v1/works/:id
func (h *Handler) DeleteWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrWorkNotFound {
			response.Error(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Work deleted"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
