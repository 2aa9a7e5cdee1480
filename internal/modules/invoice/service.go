package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

// Service handles invoice business logic
type Service struct {
	repo      InvoiceRepository
	customers CustomerReader
	notifs    Notifier
}

func NewService(repo InvoiceRepository, customers CustomerReader, notifs Notifier) *Service {
	return &Service{repo: repo, customers: customers, notifs: notifs}
}

func (s *Service) notify(ctx context.Context, kind, message string, data map[string]any) {
	if s.notifs != nil {
		s.notifs.Notify(ctx, kind, message, data)
	}
}

// newInvoiceNumber derives a human-readable unique number, e.g.
// INV-2026-1A2B3C4D.
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("INV-%d-%s", now.Year(), suffix)
}

// Create opens a draft invoice for the customer. Lines are added
// separately; the draft starts empty with a zero total.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error) {
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	now := time.Now()
	inv := &domain.Invoice{
		CustomerID: req.CustomerID,
		Number:     newInvoiceNumber(now),
		Status:     domain.InvoiceDraft,
		DueAt:      req.DueAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Invoice, int64, error) {
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}

// AddLine appends a line to a draft. The running total is recalculated
// from all lines after the insert.
func (s *Service) AddLine(ctx context.Context, invoiceID int64, req AddLineRequest) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceDraft {
		return nil, ErrNotDraft
	}

	line := &domain.InvoiceLine{
		InvoiceID:   invoiceID,
		ServiceID:   req.ServiceID,
		WorkID:      req.WorkID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}

	if err := s.repo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return s.recalcTotal(ctx, invoiceID)
}

func (s *Service) RemoveLine(ctx context.Context, invoiceID, lineID int64) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceDraft {
		return nil, ErrNotDraft
	}

	if err := s.repo.RemoveLine(ctx, invoiceID, lineID); err != nil {
		return nil, err
	}
	return s.recalcTotal(ctx, invoiceID)
}

func (s *Service) recalcTotal(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, line := range inv.Lines {
		total += line.Amount()
	}

	if total != inv.Total {
		if err := s.repo.UpdateTotal(ctx, invoiceID, total); err != nil {
			return nil, err
		}
		inv.Total = total
	}
	return inv, nil
}

// Send issues a draft with at least one line.
func (s *Service) Send(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceDraft {
		return nil, ErrNotDraft
	}
	if len(inv.Lines) == 0 {
		return nil, ErrNoLines
	}

	if err := s.repo.MarkSent(ctx, invoiceID, time.Now()); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, invoiceID)
}

// AddPayment records a payment against a sent invoice. When payments
// cover the total, the invoice flips to paid.
func (s *Service) AddPayment(ctx context.Context, invoiceID int64, req AddPaymentRequest) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceSent {
		return nil, ErrNotSent
	}

	p := &domain.Payment{
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		PaidAt:    time.Now(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddPayment(ctx, p); err != nil {
		return nil, err
	}

	paid, err := s.repo.SumPayments(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if paid >= inv.Total {
		if err := s.repo.UpdateStatus(ctx, invoiceID, domain.InvoicePaid); err != nil {
			return nil, err
		}
		s.notify(ctx, "invoice.paid", fmt.Sprintf("Invoice %s fully paid", inv.Number), map[string]any{
			"invoice_id":  inv.ID,
			"customer_id": inv.CustomerID,
			"total":       inv.Total,
		})
	}

	return s.GetByID(ctx, invoiceID)
}

// Cancel voids a draft or sent invoice. Paid invoices are immutable.
func (s *Service) Cancel(ctx context.Context, invoiceID int64) error {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status == domain.InvoicePaid || inv.Status == domain.InvoiceCancelled {
		return ErrImmutable
	}

	return s.repo.UpdateStatus(ctx, invoiceID, domain.InvoiceCancelled)
}
