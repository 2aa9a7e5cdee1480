package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"opsdesk/internal/domain"
	"opsdesk/internal/pkg/validator"
)

// Mock repositories

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	if lead != nil {
		lead.ID = 1
	}
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]domain.Lead, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) Assign(ctx context.Context, id int64, staffID *int64) error {
	args := m.Called(ctx, id, staffID)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkConverted(ctx context.Context, leadID, customerID int64, at time.Time) error {
	args := m.Called(ctx, leadID, customerID, at)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) AddService(ctx context.Context, ls *domain.LeadService) error {
	args := m.Called(ctx, ls)
	return args.Error(0)
}

func (m *MockLeadRepository) RemoveService(ctx context.Context, leadID, serviceID int64) error {
	args := m.Called(ctx, leadID, serviceID)
	return args.Error(0)
}

func (m *MockLeadRepository) GetServices(ctx context.Context, leadID int64) ([]domain.LeadService, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]domain.LeadService), args.Error(1)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.LeadStatus]int64), args.Error(1)
}

type MockCustomerWriter struct {
	mock.Mock
}

func (m *MockCustomerWriter) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	if customer != nil && args.Error(0) == nil {
		customer.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCustomerWriter) AddService(ctx context.Context, cs *domain.CustomerService) error {
	args := m.Called(ctx, cs)
	return args.Error(0)
}

type MockWorkWriter struct {
	mock.Mock
}

func (m *MockWorkWriter) Create(ctx context.Context, work *domain.Work) error {
	args := m.Called(ctx, work)
	if work != nil && args.Error(0) == nil {
		work.ID = 1000 + work.ServiceID
	}
	return args.Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

// recordingNotifier collects emitted toast events.
type recordingNotifier struct {
	kinds []string
}

func (n *recordingNotifier) Notify(_ context.Context, kind, _ string, _ map[string]any) {
	n.kinds = append(n.kinds, kind)
}

func newTestService(repo *MockLeadRepository, customers *MockCustomerWriter, works *MockWorkWriter, catalog *MockCatalog) (*Service, *recordingNotifier) {
	notifs := &recordingNotifier{}
	return NewService(repo, customers, works, catalog, notifs), notifs
}

func leadFixture(services ...domain.LeadService) *domain.Lead {
	return &domain.Lead{
		ID:       42,
		Name:     "Acme Co",
		Email:    "info@acme.test",
		Phone:    "555-0101",
		Notes:    "wants monthly maintenance",
		Status:   domain.LeadQualified,
		Services: services,
	}
}

func TestConvert_NoServices_CreatesNoWorks(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(42)).Return(leadFixture(), nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(nil)

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.NoError(t, err)
	assert.Equal(t, PhaseSummary, summary.Phase)
	assert.Equal(t, int64(777), summary.CustomerID)
	assert.Zero(t, summary.ServicesCarried)
	assert.Empty(t, summary.Results)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
}

func TestBuildConvertPreview_OneDraftPerService(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(
		domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"},
		domain.LeadService{LeadID: 42, ServiceID: 102, ServiceName: "Lawn Care"},
		domain.LeadService{LeadID: 42, ServiceID: 103, ServiceName: "Cleaning"},
	)
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)

	service, _ := newTestService(repo, customers, works, catalog)

	preview, err := service.BuildConvertPreview(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, preview.Drafts, 3)

	seen := make(map[int64]bool)
	for _, d := range preview.Drafts {
		assert.False(t, seen[d.ServiceID], "service ids must be distinct")
		seen[d.ServiceID] = true
		assert.Equal(t, domain.PriorityMedium, d.Priority)
		assert.Nil(t, d.AssignedTo)
	}
	assert.Equal(t, "Pest Control for Acme Co", preview.Drafts[0].Title)
	assert.Equal(t, "wants monthly maintenance", preview.Drafts[0].Description)
	assert.Equal(t, "Acme Co", preview.Customer.Name)
}

func TestBuildConvertPreview_GenericDescriptionWithoutNotes(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"})
	lead.Notes = ""
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)

	service, _ := newTestService(repo, customers, works, catalog)

	preview, err := service.BuildConvertPreview(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, "Pest Control requested during lead intake", preview.Drafts[0].Description)
}

func TestConvert_CarriesForwardEachLeadService(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("AddService", mock.Anything, mock.MatchedBy(func(cs *domain.CustomerService) bool {
		return cs.CustomerID == 777 &&
			cs.ServiceID == 101 &&
			cs.Status == domain.CustomerServiceActive &&
			cs.Price == 0
	})).Return(nil).Once()
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(nil)
	works.On("Create", mock.Anything, mock.Anything).Return(nil)

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.ServicesCarried)
	assert.True(t, summary.LeadMarked)
	customers.AssertExpectations(t)
}

func TestConvert_CustomerCreateFailure_AbortsBeforeAnyOtherWrite(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.Error(t, err)
	assert.Nil(t, summary)
	customers.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkConverted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvert_MarkConvertedFailure_IsNonFatal(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("AddService", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(errors.New("deadlock detected"))
	works.On("Create", mock.Anything, mock.Anything).Return(nil)

	service, notifs := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.NoError(t, err)
	assert.Equal(t, PhaseSummary, summary.Phase)
	assert.False(t, summary.LeadMarked)
	assert.Equal(t, "deadlock detected", summary.LeadMarkError)
	// Work creation still runs after the non-fatal mark failure.
	assert.Equal(t, 1, summary.WorksCreated)
	assert.Contains(t, notifs.kinds, "lead.mark_failed")
}

func TestConvert_PartialWorkFailure_DoesNotAbortRemainingDrafts(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(
		domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"},
		domain.LeadService{LeadID: 42, ServiceID: 102, ServiceName: "Lawn Care"},
		domain.LeadService{LeadID: 42, ServiceID: 103, ServiceName: "Cleaning"},
	)
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("AddService", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(nil)

	works.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Work) bool {
		return w.ServiceID == 102
	})).Return(errors.New("insert failed"))
	works.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Work) bool {
		return w.ServiceID != 102
	})).Return(nil)

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.NoError(t, err)
	assert.Equal(t, PhaseSummary, summary.Phase)
	assert.Len(t, summary.Results, 3)
	assert.Equal(t, 2, summary.WorksCreated)
	assert.Equal(t, 1, summary.WorksFailed)

	for _, r := range summary.Results {
		if r.Draft.ServiceID == 102 {
			assert.False(t, r.Created)
			assert.Equal(t, "insert failed", r.Error)
		} else {
			assert.True(t, r.Created)
			assert.NotZero(t, r.WorkID)
		}
	}
}

func TestConvert_EditedDrafts_ExactErrorMessageSurfaced(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(
		domain.LeadService{LeadID: 42, ServiceID: 1, ServiceName: "Service One"},
		domain.LeadService{LeadID: 42, ServiceID: 2, ServiceName: "Service Two"},
	)
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("AddService", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(nil)

	works.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Work) bool {
		return w.Title == "A"
	})).Return(nil)
	works.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Work) bool {
		return w.Title == "B"
	})).Return(errors.New("duplicate title"))

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
		Works: []WorkDraftInput{
			{ServiceID: 1, Title: "A"},
			{ServiceID: 2, Title: "B"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, summary.Results, 2)
	assert.True(t, summary.Results[0].Created)
	assert.False(t, summary.Results[1].Created)
	assert.Equal(t, "duplicate title", summary.Results[1].Error)
}

func TestConvert_UnknownDraftService_NothingWritten(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 1, ServiceName: "Service One"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	catalog.On("GetByID", mock.Anything, int64(99)).Return(nil, errors.New("record not found"))

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
		Works: []WorkDraftInput{
			{ServiceID: 99, Title: "Hand-added work"},
		},
	})

	assert.ErrorIs(t, err, ErrUnknownWorkService)
	assert.Nil(t, summary)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkConverted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvert_BlankDraftTitle_NothingWritten(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 1, ServiceName: "Service One"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)

	service, _ := newTestService(repo, customers, works, catalog)

	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
		Works: []WorkDraftInput{
			{ServiceID: 1, Title: "   "},
		},
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, summary)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	customers.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkConverted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvertLeadRequest_ValidationDivesIntoDrafts(t *testing.T) {
	errs := validator.Validate(&ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
		Works: []WorkDraftInput{
			{ServiceID: 1, Title: ""},
		},
	})

	assert.NotEmpty(t, errs)
	assert.Equal(t, "required", errs["Title"])
}

func TestConvert_CreateWorksDisabled(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	lead := leadFixture(domain.LeadService{LeadID: 42, ServiceID: 101, ServiceName: "Pest Control"})
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("AddService", mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkConverted", mock.Anything, int64(42), int64(777), mock.Anything).Return(nil)

	service, _ := newTestService(repo, customers, works, catalog)

	noWorks := false
	summary, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer:    CustomerFields{Name: "Acme Co"},
		CreateWorks: &noWorks,
	})

	assert.NoError(t, err)
	assert.Equal(t, PhaseSummary, summary.Phase)
	assert.Empty(t, summary.Results)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvert_AlreadyConverted(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	customerID := int64(9)
	lead := leadFixture()
	lead.Status = domain.LeadConverted
	lead.ConvertedToCustomerID = &customerID
	repo.On("GetByID", mock.Anything, int64(42)).Return(lead, nil)

	service, _ := newTestService(repo, customers, works, catalog)

	_, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "Acme Co"},
	})

	assert.ErrorIs(t, err, ErrAlreadyConverted)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConvert_EmptyCustomerName(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(42)).Return(leadFixture(), nil)

	service, _ := newTestService(repo, customers, works, catalog)

	_, err := service.Convert(context.Background(), 42, ConvertLeadRequest{
		Customer: CustomerFields{Name: "   "},
	})

	assert.ErrorIs(t, err, ErrValidation)
	customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateWorksFromDrafts_MissingCustomerPrecondition(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	service, _ := newTestService(repo, customers, works, catalog)

	results, err := service.createWorksFromDrafts(context.Background(), 0, []WorkDraft{
		{ServiceID: 1, Title: "A"},
	})

	assert.ErrorIs(t, err, ErrNoCustomer)
	assert.Nil(t, results)
	works.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateWorksFromDrafts_InvalidDraftRecordedNotAttempted(t *testing.T) {
	repo := new(MockLeadRepository)
	customers := new(MockCustomerWriter)
	works := new(MockWorkWriter)
	catalog := new(MockCatalog)

	works.On("Create", mock.Anything, mock.Anything).Return(nil)

	service, _ := newTestService(repo, customers, works, catalog)

	results, err := service.createWorksFromDrafts(context.Background(), 777, []WorkDraft{
		{ServiceID: 1, Title: ""},
		{ServiceID: 2, Title: "Valid"},
	})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.False(t, results[0].Created)
	assert.Equal(t, "work title and service are required", results[0].Error)
	assert.True(t, results[1].Created)
	works.AssertNumberOfCalls(t, "Create", 1)
}
