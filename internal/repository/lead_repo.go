package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) DB() *gorm.DB { return r.db }

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).Preload("Services").First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]domain.Lead, int64, error) {
	var leads []domain.Lead
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Lead{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Services").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	return leads, total, err
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *LeadRepository) Assign(ctx context.Context, id int64, staffID *int64) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{"assigned_to": staffID, "updated_at": time.Now()}).Error
}

// MarkConverted sets the conversion fields on a lead. Writing the same
// values twice leaves the row unchanged, so the call is idempotent.
func (r *LeadRepository) MarkConverted(ctx context.Context, leadID, customerID int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", leadID).
		Updates(map[string]any{
			"status":                   domain.LeadConverted,
			"converted_to_customer_id": customerID,
			"converted_at":             at,
			"updated_at":               time.Now(),
		}).Error
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", id).Delete(&domain.LeadService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Lead{}, id).Error
	})
}

func (r *LeadRepository) AddService(ctx context.Context, ls *domain.LeadService) error {
	return r.db.WithContext(ctx).Create(ls).Error
}

func (r *LeadRepository) RemoveService(ctx context.Context, leadID, serviceID int64) error {
	return r.db.WithContext(ctx).
		Where("lead_id = ? AND service_id = ?", leadID, serviceID).
		Delete(&domain.LeadService{}).Error
}

func (r *LeadRepository) GetServices(ctx context.Context, leadID int64) ([]domain.LeadService, error) {
	var services []domain.LeadService
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	type row struct {
		Status domain.LeadStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.LeadStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
