package invoice

import (
	"time"

	"opsdesk/internal/domain"
)

type CreateInvoiceRequest struct {
	CustomerID int64      `json:"customer_id" validate:"required"`
	DueAt      *time.Time `json:"due_at"`
}

type AddLineRequest struct {
	ServiceID   *int64  `json:"service_id"`
	WorkID      *int64  `json:"work_id"`
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type AddPaymentRequest struct {
	Amount    float64              `json:"amount" validate:"required,gt=0"`
	Method    domain.PaymentMethod `json:"method" validate:"required,oneof=cash card transfer"`
	Reference string               `json:"reference"`
}

type InvoiceListResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Total    int64            `json:"total"`
}
