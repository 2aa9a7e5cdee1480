package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

// Service handles customer business logic
type Service struct {
	repo    CustomerRepository
	catalog ServiceCatalog
}

func NewService(repo CustomerRepository, catalog ServiceCatalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	now := time.Now()
	customer := &domain.Customer{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		AltPhone:    req.AltPhone,
		Company:     req.Company,
		Address:     req.Address,
		City:        req.City,
		TaxID:       req.TaxID,
		BankAccount: req.BankAccount,
		Notes:       req.Notes,
		Status:      domain.CustomerActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, status *domain.CustomerStatus, limit, offset int) ([]domain.Customer, int64, error) {
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		customer.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.AltPhone != "" {
		customer.AltPhone = req.AltPhone
	}
	if req.Company != "" {
		customer.Company = req.Company
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.City != "" {
		customer.City = req.City
	}
	if req.TaxID != "" {
		customer.TaxID = req.TaxID
	}
	if req.BankAccount != "" {
		customer.BankAccount = req.BankAccount
	}
	if req.Notes != "" {
		customer.Notes = req.Notes
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// AddService subscribes the customer to a catalog service at the given price.
func (s *Service) AddService(ctx context.Context, customerID int64, req AddCustomerServiceRequest) (*domain.CustomerService, error) {
	if _, err := s.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	if existing, err := s.repo.GetService(ctx, customerID, req.ServiceID); err == nil && existing != nil {
		return nil, ErrServiceAlreadySubscribed
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	cs := &domain.CustomerService{
		CustomerID: customerID,
		ServiceID:  req.ServiceID,
		Status:     domain.CustomerServiceActive,
		Price:      req.Price,
		StartDate:  req.StartDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.AddService(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) UpdateService(ctx context.Context, customerID, serviceID int64, req UpdateCustomerServiceRequest) (*domain.CustomerService, error) {
	cs, err := s.repo.GetService(ctx, customerID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotSubscribed
		}
		return nil, err
	}

	if req.Status != "" {
		cs.Status = req.Status
	}
	if req.Price != nil {
		cs.Price = *req.Price
	}
	cs.UpdatedAt = time.Now()

	if err := s.repo.UpdateService(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) RemoveService(ctx context.Context, customerID, serviceID int64) error {
	if _, err := s.repo.GetService(ctx, customerID, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotSubscribed
		}
		return err
	}
	return s.repo.RemoveService(ctx, customerID, serviceID)
}

func (s *Service) GetServices(ctx context.Context, customerID int64) ([]domain.CustomerService, error) {
	if _, err := s.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.GetServices(ctx, customerID)
}
