package customer

import (
	"context"

	"opsdesk/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, status *domain.CustomerStatus, limit, offset int) ([]domain.Customer, int64, error)
	Update(ctx context.Context, customer *domain.Customer) error
	UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error
	AddService(ctx context.Context, cs *domain.CustomerService) error
	UpdateService(ctx context.Context, cs *domain.CustomerService) error
	RemoveService(ctx context.Context, customerID, serviceID int64) error
	GetServices(ctx context.Context, customerID int64) ([]domain.CustomerService, error)
	GetService(ctx context.Context, customerID, serviceID int64) (*domain.CustomerService, error)
}

type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
