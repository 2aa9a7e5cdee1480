package note

import (
	"context"

	"opsdesk/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	ListByParent(ctx context.Context, parentType domain.NoteParent, parentID int64) ([]domain.Note, error)
	Delete(ctx context.Context, id int64) error
}

type LeadReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
