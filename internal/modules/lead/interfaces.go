package lead

import (
	"context"
	"time"

	"opsdesk/internal/domain"
)

// LeadRepository defines lead data access
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]domain.Lead, int64, error)
	Update(ctx context.Context, lead *domain.Lead) error
	UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	Assign(ctx context.Context, id int64, staffID *int64) error
	MarkConverted(ctx context.Context, leadID, customerID int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	AddService(ctx context.Context, ls *domain.LeadService) error
	RemoveService(ctx context.Context, leadID, serviceID int64) error
	GetServices(ctx context.Context, leadID int64) ([]domain.LeadService, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error)
}

// CustomerWriter covers the customer-side writes the conversion flow needs.
type CustomerWriter interface {
	Create(ctx context.Context, customer *domain.Customer) error
	AddService(ctx context.Context, cs *domain.CustomerService) error
}

// WorkWriter covers work creation during conversion.
type WorkWriter interface {
	Create(ctx context.Context, work *domain.Work) error
}

// ServiceCatalog resolves catalog services by id.
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Notifier is the toast surface. Implementations must not block;
// failures are the notifier's problem, never the flow's.
type Notifier interface {
	Notify(ctx context.Context, kind, message string, data map[string]any)
}
