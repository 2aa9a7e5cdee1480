package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Invoice{}).Where("customer_id = ?", customerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *InvoiceRepository) UpdateTotal(ctx context.Context, id int64, total float64) error {
	return r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"total": total, "updated_at": time.Now()}).Error
}

func (r *InvoiceRepository) MarkSent(ctx context.Context, id int64, issuedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     domain.InvoiceSent,
			"issued_at":  issuedAt,
			"updated_at": time.Now(),
		}).Error
}

func (r *InvoiceRepository) AddLine(ctx context.Context, line *domain.InvoiceLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *InvoiceRepository) RemoveLine(ctx context.Context, invoiceID, lineID int64) error {
	return r.db.WithContext(ctx).
		Where("invoice_id = ? AND id = ?", invoiceID, lineID).
		Delete(&domain.InvoiceLine{}).Error
}

func (r *InvoiceRepository) AddPayment(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InvoiceRepository) SumPayments(ctx context.Context, invoiceID int64) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
