package invoice

import (
	"context"
	"time"

	"opsdesk/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error
	UpdateTotal(ctx context.Context, id int64, total float64) error
	MarkSent(ctx context.Context, id int64, issuedAt time.Time) error
	AddLine(ctx context.Context, line *domain.InvoiceLine) error
	RemoveLine(ctx context.Context, invoiceID, lineID int64) error
	AddPayment(ctx context.Context, p *domain.Payment) error
	SumPayments(ctx context.Context, invoiceID int64) (float64, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type Notifier interface {
	Notify(ctx context.Context, kind, message string, data map[string]any)
}
