package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"opsdesk/internal/domain"
)

// Phase is the logical stage of the conversion flow. The terminal phase is
// reported in the summary so callers can tell a completed flow from one
// that aborted mid-way.
type Phase string

const (
	PhaseCollecting       Phase = "collecting-customer-fields"
	PhaseCustomerCreated  Phase = "customer-created"
	PhaseConfiguringWorks Phase = "configuring-works"
	PhaseCreatingWorks    Phase = "creating-works"
	PhaseSummary          Phase = "summary"
)

// WorkDraft is an in-memory work configuration, seeded from a lead service
// and editable before submission.
type WorkDraft struct {
	ServiceID   int64               `json:"service_id"`
	ServiceName string              `json:"service_name"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    domain.WorkPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	AssignedTo  *int64              `json:"assigned_to,omitempty"`
}

// ConversionResult records the outcome of one attempted work insert.
type ConversionResult struct {
	Draft   WorkDraft `json:"draft"`
	WorkID  int64     `json:"work_id,omitempty"`
	Created bool      `json:"created"`
	Error   string    `json:"error,omitempty"`
}

type ConversionSummary struct {
	Phase           Phase              `json:"phase"`
	LeadID          int64              `json:"lead_id"`
	CustomerID      int64              `json:"customer_id"`
	ServicesCarried int                `json:"services_carried"`
	LeadMarked      bool               `json:"lead_marked"`
	LeadMarkError   string             `json:"lead_mark_error,omitempty"`
	Results         []ConversionResult `json:"results"`
	WorksCreated    int                `json:"works_created"`
	WorksFailed     int                `json:"works_failed"`
}

// BuildConvertPreview returns the customer form pre-populated from the lead
// plus one prefilled work draft per lead service.
func (s *Service) BuildConvertPreview(ctx context.Context, leadID int64) (*ConvertPreviewResponse, error) {
	lead, err := s.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.guardConvertible(lead); err != nil {
		return nil, err
	}

	return &ConvertPreviewResponse{
		Customer: CustomerFields{
			Name:     lead.Name,
			Email:    lead.Email,
			Phone:    lead.Phone,
			AltPhone: lead.AltPhone,
			Company:  lead.Company,
			Address:  lead.Address,
			City:     lead.City,
			Notes:    lead.Notes,
		},
		Drafts: buildWorkDrafts(lead, lead.Services),
	}, nil
}

// Convert runs the full conversion: customer create, service carry-forward,
// lead mark-converted, optional work creation. There is no rollback: once
// the customer is committed, later failures leave it in place
// (accept-partial-success). The summary records every partial outcome.
func (s *Service) Convert(ctx context.Context, leadID int64, req ConvertLeadRequest) (*ConversionSummary, error) {
	lead, err := s.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.guardConvertible(lead); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		return nil, ErrValidation
	}

	// The lead's services are read once here and seed everything downstream.
	services := lead.Services

	// Drafts are resolved and validated up front, before the customer is
	// created. This stage only reads the catalog, so a bad draft rejects
	// the whole request with nothing written.
	createWorks := req.CreateWorks == nil || *req.CreateWorks
	var drafts []WorkDraft
	if createWorks && len(services) > 0 {
		drafts = buildWorkDrafts(lead, services)
		if len(req.Works) > 0 {
			drafts, err = s.draftsFromInput(ctx, services, req.Works)
			if err != nil {
				return nil, err
			}
		}
	}

	summary := &ConversionSummary{
		Phase:  PhaseCollecting,
		LeadID: lead.ID,
	}

	customerID, err := s.createCustomerFromLead(ctx, req.Customer)
	if err != nil {
		// Nothing has been written; the caller stays on the form.
		return nil, err
	}
	summary.CustomerID = customerID
	s.notify(ctx, "customer.created", fmt.Sprintf("Customer %q created", req.Customer.Name), map[string]any{
		"customer_id": customerID,
		"lead_id":     lead.ID,
	})

	if err := s.carryForwardServices(ctx, customerID, services); err != nil {
		// Fatal: the customer stands but the flow stops before the lead
		// is mutated. No compensating delete.
		return nil, fmt.Errorf("carry forward services: %w", err)
	}
	summary.ServicesCarried = len(services)
	summary.Phase = PhaseCustomerCreated

	if err := s.repo.MarkConverted(ctx, lead.ID, customerID, time.Now()); err != nil {
		// Non-fatal: the customer and its services are already committed.
		summary.LeadMarked = false
		summary.LeadMarkError = err.Error()
		s.notify(ctx, "lead.mark_failed", "Customer created but lead could not be marked converted", map[string]any{
			"lead_id": lead.ID,
			"error":   err.Error(),
		})
	} else {
		summary.LeadMarked = true
	}

	if createWorks && len(services) > 0 {
		summary.Phase = PhaseCreatingWorks
		results, err := s.createWorksFromDrafts(ctx, customerID, drafts)
		if err != nil {
			return nil, err
		}
		summary.Results = results
		for _, r := range results {
			if r.Created {
				summary.WorksCreated++
			} else {
				summary.WorksFailed++
			}
		}
	}

	summary.Phase = PhaseSummary
	s.notify(ctx, "lead.converted", fmt.Sprintf("Lead %q converted: %d of %d works created", lead.Name, summary.WorksCreated, len(summary.Results)), map[string]any{
		"lead_id":     lead.ID,
		"customer_id": customerID,
	})

	return summary, nil
}

func (s *Service) guardConvertible(lead *domain.Lead) error {
	if lead.IsConverted() {
		return ErrAlreadyConverted
	}
	if lead.Status == domain.LeadLost {
		return ErrCannotConvert
	}
	return nil
}

func (s *Service) createCustomerFromLead(ctx context.Context, fields CustomerFields) (int64, error) {
	now := time.Now()
	customer := &domain.Customer{
		Name:        strings.TrimSpace(fields.Name),
		Email:       strings.ToLower(strings.TrimSpace(fields.Email)),
		Phone:       fields.Phone,
		AltPhone:    fields.AltPhone,
		Company:     fields.Company,
		Address:     fields.Address,
		City:        fields.City,
		TaxID:       fields.TaxID,
		BankAccount: fields.BankAccount,
		Notes:       fields.Notes,
		Status:      domain.CustomerActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return customer.ID, nil
}

// carryForwardServices inserts one customer_services row per lead service,
// status active and price 0. No-op for a lead without services.
func (s *Service) carryForwardServices(ctx context.Context, customerID int64, services []domain.LeadService) error {
	for _, ls := range services {
		cs := &domain.CustomerService{
			CustomerID: customerID,
			ServiceID:  ls.ServiceID,
			Status:     domain.CustomerServiceActive,
			Price:      0,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := s.customers.AddService(ctx, cs); err != nil {
			return err
		}
	}
	return nil
}

// createWorksFromDrafts attempts one insert per draft. A draft's failure is
// recorded in its result and never aborts the remaining drafts. The only
// error return is the missing-customer precondition, checked before any
// insert is attempted.
func (s *Service) createWorksFromDrafts(ctx context.Context, customerID int64, drafts []WorkDraft) ([]ConversionResult, error) {
	if customerID == 0 {
		return nil, ErrNoCustomer
	}

	results := make([]ConversionResult, 0, len(drafts))
	for _, draft := range drafts {
		result := ConversionResult{Draft: draft}

		if strings.TrimSpace(draft.Title) == "" || draft.ServiceID == 0 {
			result.Error = "work title and service are required"
			results = append(results, result)
			continue
		}

		priority := draft.Priority
		if priority == "" {
			priority = domain.PriorityMedium
		}

		work := &domain.Work{
			CustomerID:  customerID,
			ServiceID:   draft.ServiceID,
			Title:       draft.Title,
			Description: draft.Description,
			Priority:    priority,
			Status:      domain.WorkPending,
			DueDate:     draft.DueDate,
			AssignedTo:  draft.AssignedTo,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.works.Create(ctx, work); err != nil {
			result.Error = err.Error()
			s.notify(ctx, "work.failed", fmt.Sprintf("Work %q could not be created", draft.Title), map[string]any{
				"service_id": draft.ServiceID,
				"error":      err.Error(),
			})
		} else {
			result.WorkID = work.ID
			result.Created = true
			s.notify(ctx, "work.created", fmt.Sprintf("Work %q created", draft.Title), map[string]any{
				"work_id":     work.ID,
				"customer_id": customerID,
			})
		}
		results = append(results, result)
	}
	return results, nil
}

// buildWorkDrafts seeds one draft per lead service: title
// "<service name> for <lead name>", description from the lead's notes or a
// generic per-service fallback, priority medium, unassigned.
func buildWorkDrafts(lead *domain.Lead, services []domain.LeadService) []WorkDraft {
	drafts := make([]WorkDraft, 0, len(services))
	for _, ls := range services {
		description := lead.Notes
		if description == "" {
			description = fmt.Sprintf("%s requested during lead intake", ls.ServiceName)
		}
		drafts = append(drafts, WorkDraft{
			ServiceID:   ls.ServiceID,
			ServiceName: ls.ServiceName,
			Title:       fmt.Sprintf("%s for %s", ls.ServiceName, lead.Name),
			Description: description,
			Priority:    domain.PriorityMedium,
		})
	}
	return drafts
}

// draftsFromInput converts user-edited drafts, resolving service names from
// the lead's services first and the catalog for anything added by hand. A
// draft with a blank title, a missing service id or an unknown service
// fails the whole batch; callers run this before writing anything.
func (s *Service) draftsFromInput(ctx context.Context, services []domain.LeadService, inputs []WorkDraftInput) ([]WorkDraft, error) {
	names := make(map[int64]string, len(services))
	for _, ls := range services {
		names[ls.ServiceID] = ls.ServiceName
	}

	drafts := make([]WorkDraft, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Title) == "" || in.ServiceID == 0 {
			return nil, ErrValidation
		}
		name, ok := names[in.ServiceID]
		if !ok {
			svc, err := s.catalog.GetByID(ctx, in.ServiceID)
			if err != nil {
				return nil, ErrUnknownWorkService
			}
			name = svc.Name
		}
		drafts = append(drafts, WorkDraft{
			ServiceID:   in.ServiceID,
			ServiceName: name,
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			AssignedTo:  in.AssignedTo,
		})
	}
	return drafts, nil
}

func (s *Service) notify(ctx context.Context, kind, message string, data map[string]any) {
	if s.notifs != nil {
		s.notifs.Notify(ctx, kind, message, data)
	}
}
