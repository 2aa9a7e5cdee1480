package work

import (
	"context"

	"opsdesk/internal/domain"
	"opsdesk/internal/repository"
)

type WorkRepository interface {
	Create(ctx context.Context, work *domain.Work) error
	GetByID(ctx context.Context, id int64) (*domain.Work, error)
	List(ctx context.Context, f repository.WorkFilter) ([]domain.Work, int64, error)
	Update(ctx context.Context, work *domain.Work) error
	UpdateStatus(ctx context.Context, id int64, status domain.WorkStatus) error
	Delete(ctx context.Context, id int64) error
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
