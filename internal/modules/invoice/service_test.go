package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"opsdesk/internal/domain"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	if inv != nil && args.Error(0) == nil {
		inv.ID = 1
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Invoice, int64, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateTotal(ctx context.Context, id int64, total float64) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkSent(ctx context.Context, id int64, issuedAt time.Time) error {
	args := m.Called(ctx, id, issuedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) AddLine(ctx context.Context, line *domain.InvoiceLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RemoveLine(ctx context.Context, invoiceID, lineID int64) error {
	args := m.Called(ctx, invoiceID, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) AddPayment(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SumPayments(ctx context.Context, invoiceID int64) (float64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(float64), args.Error(1)
}

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func TestNewInvoiceNumber_Format(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	number := newInvoiceNumber(now)

	assert.True(t, strings.HasPrefix(number, "INV-2026-"))
	assert.Len(t, number, len("INV-2026-")+8)
	assert.NotEqual(t, number, newInvoiceNumber(now))
}

func TestCreate_OpensDraft(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	customers.On("GetByID", mock.Anything, int64(3)).Return(&domain.Customer{ID: 3}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.Status == domain.InvoiceDraft && inv.Total == 0 && inv.Number != ""
	})).Return(nil)

	service := NewService(repo, customers, nil)

	inv, err := service.Create(context.Background(), CreateInvoiceRequest{CustomerID: 3})

	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceDraft, inv.Status)
	repo.AssertExpectations(t)
}

func TestAddLine_RecalculatesTotal(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	draft := &domain.Invoice{ID: 1, Status: domain.InvoiceDraft}
	withLines := &domain.Invoice{
		ID:     1,
		Status: domain.InvoiceDraft,
		Lines: []domain.InvoiceLine{
			{Quantity: 2, UnitPrice: 100},
			{Quantity: 1, UnitPrice: 50},
		},
	}
	repo.On("GetByID", mock.Anything, int64(1)).Return(draft, nil).Once()
	repo.On("AddLine", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(withLines, nil)
	repo.On("UpdateTotal", mock.Anything, int64(1), float64(250)).Return(nil)

	service := NewService(repo, customers, nil)

	inv, err := service.AddLine(context.Background(), 1, AddLineRequest{
		Description: "Lawn care, March",
		Quantity:    1,
		UnitPrice:   50,
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(250), inv.Total)
	repo.AssertExpectations(t)
}

func TestAddLine_NonDraftRejected(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Invoice{ID: 1, Status: domain.InvoiceSent}, nil)

	service := NewService(repo, customers, nil)

	_, err := service.AddLine(context.Background(), 1, AddLineRequest{
		Description: "Extra visit",
		Quantity:    1,
		UnitPrice:   80,
	})

	assert.ErrorIs(t, err, ErrNotDraft)
	repo.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything)
}

func TestSend_EmptyDraftRejected(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Invoice{ID: 1, Status: domain.InvoiceDraft}, nil)

	service := NewService(repo, customers, nil)

	_, err := service.Send(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNoLines)
	repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddPayment_CoveringTotalMarksPaid(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	sent := &domain.Invoice{ID: 1, Status: domain.InvoiceSent, Total: 300}
	repo.On("GetByID", mock.Anything, int64(1)).Return(sent, nil)
	repo.On("AddPayment", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 300 && p.Method == domain.PaymentTransfer
	})).Return(nil)
	repo.On("SumPayments", mock.Anything, int64(1)).Return(float64(300), nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.InvoicePaid).Return(nil)

	service := NewService(repo, customers, nil)

	_, err := service.AddPayment(context.Background(), 1, AddPaymentRequest{
		Amount: 300,
		Method: domain.PaymentTransfer,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAddPayment_PartialKeepsSent(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	sent := &domain.Invoice{ID: 1, Status: domain.InvoiceSent, Total: 300}
	repo.On("GetByID", mock.Anything, int64(1)).Return(sent, nil)
	repo.On("AddPayment", mock.Anything, mock.Anything).Return(nil)
	repo.On("SumPayments", mock.Anything, int64(1)).Return(float64(100), nil)

	service := NewService(repo, customers, nil)

	_, err := service.AddPayment(context.Background(), 1, AddPaymentRequest{
		Amount: 100,
		Method: domain.PaymentCash,
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_PaidInvoiceImmutable(t *testing.T) {
	repo := new(MockInvoiceRepository)
	customers := new(MockCustomerReader)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Invoice{ID: 1, Status: domain.InvoicePaid}, nil)

	service := NewService(repo, customers, nil)

	err := service.Cancel(context.Background(), 1)

	assert.ErrorIs(t, err, ErrImmutable)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
