package note

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

// Service handles communication log business logic
type Service struct {
	repo      NoteRepository
	leads     LeadReader
	customers CustomerReader
}

func NewService(repo NoteRepository, leads LeadReader, customers CustomerReader) *Service {
	return &Service{repo: repo, leads: leads, customers: customers}
}

func (s *Service) Create(ctx context.Context, authorID int64, req CreateNoteRequest) (*domain.Note, error) {
	if err := s.checkParent(ctx, req.ParentType, req.ParentID); err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.NotePlain
	}

	note := &domain.Note{
		ParentType: req.ParentType,
		ParentID:   req.ParentID,
		AuthorID:   authorID,
		Kind:       kind,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListByParent(ctx context.Context, parentType domain.NoteParent, parentID int64) ([]domain.Note, error) {
	if err := s.checkParent(ctx, parentType, parentID); err != nil {
		return nil, err
	}
	return s.repo.ListByParent(ctx, parentType, parentID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkParent(ctx context.Context, parentType domain.NoteParent, parentID int64) error {
	var err error
	switch parentType {
	case domain.NoteParentLead:
		_, err = s.leads.GetByID(ctx, parentID)
	case domain.NoteParentCustomer:
		_, err = s.customers.GetByID(ctx, parentID)
	default:
		return ErrValidation
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	return nil
}
