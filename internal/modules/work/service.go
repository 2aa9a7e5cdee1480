package work

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
	"opsdesk/internal/repository"
)

// transitions is the allowed status graph. Completed and cancelled are
// terminal.
var transitions = map[domain.WorkStatus][]domain.WorkStatus{
	domain.WorkPending:    {domain.WorkInProgress, domain.WorkCancelled},
	domain.WorkInProgress: {domain.WorkCompleted, domain.WorkCancelled},
}

func canTransition(from, to domain.WorkStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Service handles work business logic
type Service struct {
	repo      WorkRepository
	customers CustomerReader
	catalog   ServiceCatalog
}

func NewService(repo WorkRepository, customers CustomerReader, catalog ServiceCatalog) *Service {
	return &Service{repo: repo, customers: customers, catalog: catalog}
}

func (s *Service) Create(ctx context.Context, req CreateWorkRequest) (*domain.Work, error) {
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if _, err := s.catalog.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	work := &domain.Work{
		CustomerID:  req.CustomerID,
		ServiceID:   req.ServiceID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		Status:      domain.WorkPending,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Work, error) {
	work, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return work, nil
}

func (s *Service) List(ctx context.Context, f repository.WorkFilter) ([]domain.Work, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateWorkRequest) (*domain.Work, error) {
	work, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if work.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	if req.Title != "" {
		work.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		work.Description = req.Description
	}
	if req.Priority != "" {
		work.Priority = req.Priority
	}
	if req.DueDate != nil {
		work.DueDate = req.DueDate
	}
	if req.AssignedTo != nil {
		work.AssignedTo = req.AssignedTo
	}
	work.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

// UpdateStatus enforces the transition graph: pending can start or be
// cancelled, in-progress can complete or be cancelled, terminal states
// never change.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.WorkStatus) error {
	work, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if work.IsTerminal() {
		return ErrTerminalStatus
	}
	if !canTransition(work.Status, status) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
