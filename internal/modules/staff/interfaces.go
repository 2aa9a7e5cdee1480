package staff

import (
	"context"

	"opsdesk/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	SetActive(ctx context.Context, id int64, active bool) error
}
