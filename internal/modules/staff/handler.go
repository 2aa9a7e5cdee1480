package staff

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
)

// Handler handles staff HTTP requests. All routes are admin-gated at
// registration time.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := r.Group("/staff")
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.PUT("/:id", h.UpdateStaff)
		staff.PATCH("/:id/activate", h.Activate)
		staff.PATCH("/:id/deactivate", h.Deactivate)
	}
}

// CreateStaff handles POST /api/v1/staff
// @Summary Create staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStaffRequest true "Staff data"
// @Success 201 {object} response.Response{data=domain.Staff}
// @Failure 409 {object} response.Response
// @Router /staff [post]
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	staff, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailTaken {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already in use")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, staff)
}

// GetStaff handles GET /api/v1/staff/:id
func (h *Handler) GetStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	staff, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrStaffNotFound {
			response.Error(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, staff)
}

// ListStaff handles GET /api/v1/staff
func (h *Handler) ListStaff(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	members, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"staff": members})
}

// UpdateStaff handles PUT /api/v1/staff/:id
func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	staff, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if err == ErrStaffNotFound {
			response.Error(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, staff)
}

// Activate handles PATCH /api/v1/staff/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	h.setActive(c, true, "Staff member activated")
}

// Deactivate handles PATCH /api/v1/staff/:id/deactivate
func (h *Handler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "Staff member deactivated")
}

func (h *Handler) setActive(c *gin.Context, active bool, message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.SetActive(c.Request.Context(), id, active); err != nil {
		if err == ErrStaffNotFound {
			response.Error(c, http.StatusNotFound, "STAFF_NOT_FOUND", "Staff member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": message})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
