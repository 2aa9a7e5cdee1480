package domain

import "time"

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type Invoice struct {
	ID         int64         `json:"id"`
	CustomerID int64         `json:"customer_id" validate:"required"`
	Number     string        `json:"number" gorm:"uniqueIndex"`
	Status     InvoiceStatus `json:"status"`
	Total      float64       `json:"total"`
	IssuedAt   *time.Time    `json:"issued_at,omitempty"`
	DueAt      *time.Time    `json:"due_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Lines    []InvoiceLine `json:"lines,omitempty" gorm:"foreignKey:InvoiceID"`
	Payments []Payment     `json:"payments,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (Invoice) TableName() string { return "invoices" }

type InvoiceLine struct {
	ID          int64   `json:"id"`
	InvoiceID   int64   `json:"invoice_id"`
	ServiceID   *int64  `json:"service_id,omitempty"`
	WorkID      *int64  `json:"work_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func (InvoiceLine) TableName() string { return "invoice_lines" }

func (l InvoiceLine) Amount() float64 { return l.Quantity * l.UnitPrice }

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

type Payment struct {
	ID        int64         `json:"id"`
	InvoiceID int64         `json:"invoice_id"`
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference,omitempty"`
	PaidAt    time.Time     `json:"paid_at"`
	CreatedAt time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
