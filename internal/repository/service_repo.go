package repository

import (
	"context"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var svc domain.Service
	err := r.db.WithContext(ctx).First(&svc, id).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepository) List(ctx context.Context, activeOnly bool, category string) ([]domain.Service, error) {
	var services []domain.Service

	q := r.db.WithContext(ctx).Model(&domain.Service{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Service{}, id).Error
}
