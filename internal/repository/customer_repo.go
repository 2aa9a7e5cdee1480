package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Preload("Services").First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context, status *domain.CustomerStatus, limit, offset int) ([]domain.Customer, int64, error) {
	var customers []domain.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Customer{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	return customers, total, err
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *CustomerRepository) AddService(ctx context.Context, cs *domain.CustomerService) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *CustomerRepository) UpdateService(ctx context.Context, cs *domain.CustomerService) error {
	return r.db.WithContext(ctx).Save(cs).Error
}

func (r *CustomerRepository) RemoveService(ctx context.Context, customerID, serviceID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND service_id = ?", customerID, serviceID).
		Delete(&domain.CustomerService{}).Error
}

func (r *CustomerRepository) GetServices(ctx context.Context, customerID int64) ([]domain.CustomerService, error) {
	var services []domain.CustomerService
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

func (r *CustomerRepository) GetService(ctx context.Context, customerID, serviceID int64) (*domain.CustomerService, error) {
	var cs domain.CustomerService
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND service_id = ?", customerID, serviceID).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}
