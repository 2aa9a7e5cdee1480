package lead

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/domain"
	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	leads := r.Group("/leads")
	{
		leads.POST("", h.CreateLead)
		leads.GET("", h.ListLeads)
		leads.GET("/stats", h.GetStats)
		leads.GET("/:id", h.GetLead)
		leads.PUT("/:id", h.UpdateLead)
		leads.DELETE("/:id", h.DeleteLead)
		leads.PATCH("/:id/status", h.UpdateStatus)
		leads.PATCH("/:id/assign", h.AssignLead)
		leads.POST("/:id/services", h.AddService)
		leads.DELETE("/:id/services/:serviceId", h.RemoveService)
		leads.POST("/:id/convert/preview", h.ConvertPreview)
		leads.POST("/:id/convert", h.ConvertLead)
	}
}

// CreateLead handles POST /api/v1/leads
// @Summary Create lead
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLeadRequest true "Lead data"
// @Success 201 {object} response.Response{data=domain.Lead}
// @Failure 422 {object} response.Response
// @Router /leads [post]
func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	lead, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, lead)
}

// GetLead handles GET /api/v1/leads/:id
// @Summary Get lead by ID
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response{data=domain.Lead}
// @Failure 404 {object} response.Response
// @Router /leads/{id} [get]
func (h *Handler) GetLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// ListLeads handles GET /api/v1/leads
// @Summary List leads
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, contacted, qualified, proposal, negotiation, lost, converted)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=LeadListResponse}
// @Router /leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	var status *domain.LeadStatus
	if s := c.Query("status"); s != "" {
		statusVal := domain.LeadStatus(s)
		status = &statusVal
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	leads, total, err := h.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, LeadListResponse{Leads: leads, Total: total})
}

// UpdateLead handles PUT /api/v1/leads/:id
func (h *Handler) UpdateLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	lead, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateLeadStatusRequest
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
		case ErrLeadNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
		case ErrAlreadyConverted:
			response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Lead already converted")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Converted status is set by the conversion flow")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// AssignLead handles PATCH /api/v1/leads/:id/assign
func (h *Handler) AssignLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := h.service.Assign(c.Request.Context(), id, req.StaffID); err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lead assigned"})
}

// DeleteLead handles DELETE /api/v1/leads/:id
func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lead deleted"})
}

// AddService handles POST /api/v1/leads/:id/services
func (h *Handler) AddService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddLeadServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.AddService(c.Request.Context(), id, req.ServiceID); err != nil {
		switch err {
		case ErrLeadNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
		case ErrAlreadyConverted:
			response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Lead already converted")
		case ErrServiceAlreadyAdded:
			response.Error(c, http.StatusConflict, "SERVICE_ALREADY_ADDED", "Service already added to lead")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_SERVICE", "Unknown service")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Service added"})
}

// RemoveService handles DELETE /api/v1/leads/:id/services/:serviceId
func (h *Handler) RemoveService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := parseID(c, "serviceId")
	if !ok {
		return
	}

	if err := h.service.RemoveService(c.Request.Context(), id, serviceID); err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Service removed"})
}

// ConvertPreview handles POST /api/v1/leads/:id/convert/preview
// @Summary Preview lead conversion
// @Description Returns the customer form prefilled from the lead and one work draft per interested service
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response{data=ConvertPreviewResponse}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leads/{id}/convert/preview [post]
func (h *Handler) ConvertPreview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	preview, err := h.service.BuildConvertPreview(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrLeadNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
		case ErrAlreadyConverted:
			response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Lead already converted")
		case ErrCannotConvert:
			response.Error(c, http.StatusBadRequest, "CANNOT_CONVERT", "Lost leads cannot be converted")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// ConvertLead handles POST /api/v1/leads/:id/convert
// @Summary Convert lead to customer
// @Description Creates a customer from the lead, carries over service interest, marks the lead converted and optionally creates works. Partial failures are reported per item in the summary.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param request body ConvertLeadRequest true "Conversion data"
// @Success 200 {object} response.Response{data=ConversionSummary}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leads/{id}/convert [post]
func (h *Handler) ConvertLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	summary, err := h.service.Convert(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrLeadNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
		case ErrAlreadyConverted:
			response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Lead already converted")
		case ErrCannotConvert:
			response.Error(c, http.StatusBadRequest, "CANNOT_CONVERT", "Lost leads cannot be converted")
		case ErrValidation:
			response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Customer name and work draft fields are required")
		case ErrUnknownWorkService:
			response.Error(c, http.StatusUnprocessableEntity, "UNKNOWN_SERVICE", "Work draft references an unknown service")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// GetStats handles GET /api/v1/leads/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
