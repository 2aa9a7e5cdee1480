package invoice

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
)

// Handler handles invoice HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("/:id/lines", h.AddLine)
		invoices.DELETE("/:id/lines/:lineId", h.RemoveLine)
		invoices.POST("/:id/send", h.SendInvoice)
		invoices.POST("/:id/payments", h.AddPayment)
		invoices.POST("/:id/cancel", h.CancelInvoice)
	}
}

// CreateInvoice handles POST /api/v1/invoices
// @Summary Open draft invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.Response{data=domain.Invoice}
// @Router /invoices [post]
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	inv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "INVALID_CUSTOMER", "Unknown customer")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, inv)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrInvoiceNotFound {
			response.Error(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, inv)
}

// ListInvoices handles GET /api/v1/invoices?customer_id=N
func (h *Handler) ListInvoices(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Query("customer_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_CUSTOMER", "customer_id query parameter is required")
		return
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

	invoices, total, err := h.service.ListByCustomer(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, InvoiceListResponse{Invoices: invoices, Total: total})
}

// AddLine handles POST /api/v1/invoices/:id/lines
func (h *Handler) AddLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	inv, err := h.service.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.writeInvoiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, inv)
}

// RemoveLine handles DELETE /api/v1/invoices/:id/lines/:lineId
func (h *Handler) RemoveLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := parseID(c, "lineId")
	if !ok {
		return
	}

	inv, err := h.service.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.writeInvoiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, inv)
}

// SendInvoice handles POST /api/v1/invoices/:id/send
func (h *Handler) SendInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.Send(c.Request.Context(), id)
	if err != nil {
		h.writeInvoiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, inv)
}

// AddPayment handles POST /api/v1/invoices/:id/payments
func (h *Handler) AddPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	inv, err := h.service.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		h.writeInvoiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, inv)
}

// CancelInvoice handles POST /api/v1/invoices/:id/cancel
func (h *Handler) CancelInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeInvoiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Invoice cancelled"})
}

func (h *Handler) writeInvoiceError(c *gin.Context, err error) {
	switch err {
	case ErrInvoiceNotFound:
		response.Error(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found")
	case ErrNotDraft:
		response.Error(c, http.StatusConflict, "NOT_DRAFT", "Only draft invoices can be edited")
	case ErrNotSent:
		response.Error(c, http.StatusConflict, "NOT_SENT", "Payments apply to sent invoices only")
	case ErrNoLines:
		response.Error(c, http.StatusBadRequest, "NO_LINES", "Invoice has no lines")
	case ErrImmutable:
		response.Error(c, http.StatusConflict, "IMMUTABLE", "Paid or cancelled invoices cannot change")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
