package customer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/domain"
	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
)

// Handler handles customer HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.PATCH("/:id/status", h.UpdateStatus)
		customers.GET("/:id/services", h.GetServices)
		customers.POST("/:id/services", h.AddService)
		customers.PATCH("/:id/services/:serviceId", h.UpdateService)
		customers.DELETE("/:id/services/:serviceId", h.RemoveService)
	}
}

// CreateCustomer handles POST /api/v1/customers
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "Customer data"
// @Success 201 {object} response.Response{data=domain.Customer}
// @Failure 422 {object} response.Response
// @Router /customers [post]
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrCustomerNotFound {
			response.Error(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// ListCustomers handles GET /api/v1/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	var status *domain.CustomerStatus
	if s := c.Query("status"); s != "" {
		statusVal := domain.CustomerStatus(s)
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

	customers, total, err := h.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, CustomerListResponse{Customers: customers, Total: total})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if err == ErrCustomerNotFound {
			response.Error(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// UpdateStatus handles PATCH /api/v1/customers/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if err == ErrCustomerNotFound {
			response.Error(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// GetServices handles GET /api/v1/customers/:id/services
func (h *Handler) GetServices(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	services, err := h.service.GetServices(c.Request.Context(), id)
	if err != nil {
		if err == ErrCustomerNotFound {
			response.Error(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}

// AddService handles POST /api/v1/customers/:id/services
func (h *Handler) AddService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddCustomerServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	cs, err := h.service.AddService(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrCustomerNotFound:
			response.Error(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")
		case ErrServiceAlreadySubscribed:
			response.Error(c, http.StatusConflict, "SERVICE_ALREADY_SUBSCRIBED", "Customer already subscribed to service")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_SERVICE", "Unknown service")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, cs)
}

// UpdateService handles PATCH /api/v1/customers/:id/services/:serviceId
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := parseID(c, "serviceId")
	if !ok {
		return
	}

	var req UpdateCustomerServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	cs, err := h.service.UpdateService(c.Request.Context(), id, serviceID, req)
	if err != nil {
		if err == ErrServiceNotSubscribed {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_SUBSCRIBED", "Customer is not subscribed to this service")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, cs)
}

// RemoveService handles DELETE /api/v1/customers/:id/services/:serviceId
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
		if err == ErrServiceNotSubscribed {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_SUBSCRIBED", "Customer is not subscribed to this service")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Service removed"})
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
