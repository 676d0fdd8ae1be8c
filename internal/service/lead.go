// Package service maps CRM wire records to UI-ready domain rows and
// enforces the invariants the backend leaves to convention.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"
)

// LeadAPI is the slice of the CRM client the lead service needs.
type LeadAPI interface {
	SearchLeads(ctx context.Context, req domain.PageRequest) ([]crm.LeadRecord, int, error)
	CreateLead(ctx context.Context, params domain.CreateLeadParams) error
	UpdateLead(ctx context.Context, params domain.UpdateLeadParams) error
}

// LeadService defines the interface for lead-related operations.
type LeadService interface {
	// Search retrieves one page of leads matching the request.
	Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Lead], error)

	// Create creates a new lead.
	Create(ctx context.Context, params domain.CreateLeadParams) error

	// Update updates an existing lead.
	Update(ctx context.Context, params domain.UpdateLeadParams) error
}

// leadService implements LeadService.
type leadService struct {
	api    LeadAPI
	logger *slog.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(api LeadAPI, logger *slog.Logger) LeadService {
	return &leadService{
		api:    api,
		logger: logger,
	}
}

// Search retrieves one page of leads matching the request.
func (s *leadService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Lead], error) {
	const op = "LeadService.Search"

	records, total, err := s.api.SearchLeads(ctx, req)
	if err != nil {
		s.logger.Error("failed to search leads", "error", err, "op", op, "page", req.PageNumber)
		return domain.Page[domain.Lead]{}, err
	}

	leads := make([]domain.Lead, len(records))
	for i, rec := range records {
		leads[i] = leadRecordToDomain(rec)
	}
	return domain.Page[domain.Lead]{Rows: leads, Total: total}, nil
}

// Create creates a new lead.
func (s *leadService) Create(ctx context.Context, params domain.CreateLeadParams) error {
	const op = "LeadService.Create"

	if err := validateLead(op, &params); err != nil {
		return err
	}

	if err := s.api.CreateLead(ctx, params); err != nil {
		s.logger.Error("failed to create lead", "error", err, "op", op)
		return err
	}

	metrics.LeadsCreated.Inc()
	s.logger.Info("lead created", "name", domain.FullName(params.FirstName, params.LastName))
	return nil
}

// Update updates an existing lead.
func (s *leadService) Update(ctx context.Context, params domain.UpdateLeadParams) error {
	const op = "LeadService.Update"

	if params.ID == "" {
		return domain.Invalid(op, "Lead ID is required")
	}
	if err := validateLead(op, &params.CreateLeadParams); err != nil {
		return err
	}

	if err := s.api.UpdateLead(ctx, params); err != nil {
		s.logger.Error("failed to update lead", "error", err, "op", op, "lead_id", params.ID)
		return err
	}

	s.logger.Info("lead updated", "lead_id", params.ID)
	return nil
}

// validateLead validates required lead fields and normalizes them.
func validateLead(op string, p *domain.CreateLeadParams) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	if p.CreatedBy == "" {
		return domain.Unauthorized(op, "You must be signed in to save leads")
	}
	if p.FirstName == "" && p.LastName == "" {
		return domain.Invalid(op, "Lead name is required")
	}
	return domain.ValidateContactChannels(op, p.Channels)
}

// leadRecordToDomain converts a CRM lead record to a domain Lead.
func leadRecordToDomain(rec crm.LeadRecord) domain.Lead {
	channels := crm.ContactChannels(rec.ContactData)
	primary := domain.PrimaryContact(channels)
	phone := primary
	if phone == domain.NoContact {
		phone = ""
	}
	return domain.Lead{
		ID:       rec.LeadID.String(),
		FullName: domain.FullName(rec.FirstName, rec.LastName),
		Gender:   rec.GenderName,
		Contact:  domain.FormatPhone(primary),
		Phone:    phone,
		Email:    rec.Email,
		Source:   rec.SourceName,
		Status:   rec.StatusName,
		Address:  rec.Address.Domain(),
		Channels: channels,
		Remark:   rec.Remark,
		Created:  rec.CreatedDate,
	}
}
