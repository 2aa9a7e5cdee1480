package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type WorkRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

type WorkFilter struct {
	CustomerID *int64
	Status     *domain.WorkStatus
	AssignedTo *int64
	Limit      int
	Offset     int
}

func (r *WorkRepository) Create(ctx context.Context, work *domain.Work) error {
	return r.db.WithContext(ctx).Create(work).Error
}

func (r *WorkRepository) GetByID(ctx context.Context, id int64) (*domain.Work, error) {
	var work domain.Work
	err := r.db.WithContext(ctx).First(&work, id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepository) List(ctx context.Context, f WorkFilter) ([]domain.Work, int64, error) {
	var works []domain.Work
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Work{})
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&works).Error
	return works, total, err
}

func (r *WorkRepository) Update(ctx context.Context, work *domain.Work) error {
	return r.db.WithContext(ctx).Save(work).Error
}

func (r *WorkRepository) UpdateStatus(ctx context.Context, id int64, status domain.WorkStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Work{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *WorkRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Work{}, id).Error
}
