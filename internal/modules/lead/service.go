package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

// Service handles lead business logic
type Service struct {
	repo      LeadRepository
	customers CustomerWriter
	works     WorkWriter
	catalog   ServiceCatalog
	notifs    Notifier
}

func NewService(
	repo LeadRepository,
	customers CustomerWriter,
	works WorkWriter,
	catalog ServiceCatalog,
	notifs Notifier,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		works:     works,
		catalog:   catalog,
		notifs:    notifs,
	}
}

func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	now := time.Now()
	lead := &domain.Lead{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		AltPhone:  req.AltPhone,
		Company:   req.Company,
		Address:   req.Address,
		City:      req.City,
		Notes:     req.Notes,
		Status:    domain.LeadNew,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	for _, serviceID := range req.ServiceIDs {
		if err := s.AddService(ctx, lead.ID, serviceID); err != nil && !errors.Is(err, ErrServiceAlreadyAdded) {
			return nil, err
		}
	}

	return s.GetByID(ctx, lead.ID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *Service) List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]domain.Lead, int64, error) {
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		lead.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		lead.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		lead.Phone = req.Phone
	}
	if req.AltPhone != "" {
		lead.AltPhone = req.AltPhone
	}
	if req.Company != "" {
		lead.Company = req.Company
	}
	if req.Address != "" {
		lead.Address = req.Address
	}
	if req.City != "" {
		lead.City = req.City
	}
	if req.Notes != "" {
		lead.Notes = req.Notes
	}
	lead.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateStatus moves a lead through its lifecycle. The converted status is
// only ever set by the conversion flow, never directly.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if lead.IsConverted() {
		return ErrAlreadyConverted
	}
	if status == domain.LeadConverted {
		return ErrValidation
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Assign(ctx context.Context, id int64, staffID *int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Assign(ctx, id, staffID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddService records interest in a catalog service, denormalizing the
// service name for display.
func (s *Service) AddService(ctx context.Context, leadID, serviceID int64) error {
	lead, err := s.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.IsConverted() {
		return ErrAlreadyConverted
	}

	svc, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrValidation
		}
		return err
	}

	ls := &domain.LeadService{
		LeadID:      leadID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.AddService(ctx, ls); err != nil {
		if isUniqueViolation(err) {
			return ErrServiceAlreadyAdded
		}
		return err
	}
	return nil
}

func (s *Service) RemoveService(ctx context.Context, leadID, serviceID int64) error {
	if _, err := s.GetByID(ctx, leadID); err != nil {
		return err
	}
	return s.repo.RemoveService(ctx, leadID, serviceID)
}

func (s *Service) GetStats(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
