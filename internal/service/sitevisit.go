package service

import (
	"context"
	"log/slog"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"
)

// SiteVisitAPI is the slice of the CRM client the site-visit service
// needs.
type SiteVisitAPI interface {
	SearchSiteVisits(ctx context.Context, req domain.PageRequest) ([]crm.SiteVisitRecord, int, error)
	CreateSiteVisit(ctx context.Context, params domain.CreateSiteVisitParams) error
	UpdateSiteVisit(ctx context.Context, params domain.UpdateSiteVisitParams) error
}

// SiteVisitService defines the interface for site-visit operations.
type SiteVisitService interface {
	// Search retrieves one page of site visits.
	Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.SiteVisit], error)

	// Create schedules a new site visit.
	Create(ctx context.Context, params domain.CreateSiteVisitParams) error

	// Update updates an existing site visit.
	Update(ctx context.Context, params domain.UpdateSiteVisitParams) error
}

// siteVisitService implements SiteVisitService.
type siteVisitService struct {
	api    SiteVisitAPI
	logger *slog.Logger
}

// NewSiteVisitService creates a new SiteVisitService.
func NewSiteVisitService(api SiteVisitAPI, logger *slog.Logger) SiteVisitService {
	return &siteVisitService{
		api:    api,
		logger: logger,
	}
}

// Search retrieves one page of site visits.
func (s *siteVisitService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.SiteVisit], error) {
	const op = "SiteVisitService.Search"

	records, total, err := s.api.SearchSiteVisits(ctx, req)
	if err != nil {
		s.logger.Error("failed to search site visits", "error", err, "op", op, "page", req.PageNumber)
		return domain.Page[domain.SiteVisit]{}, err
	}

	visits := make([]domain.SiteVisit, len(records))
	for i, rec := range records {
		visits[i] = siteVisitRecordToDomain(rec)
	}
	return domain.Page[domain.SiteVisit]{Rows: visits, Total: total}, nil
}

// Create schedules a new site visit.
func (s *siteVisitService) Create(ctx context.Context, params domain.CreateSiteVisitParams) error {
	const op = "SiteVisitService.Create"

	if err := validateSiteVisit(op, params); err != nil {
		return err
	}

	if err := s.api.CreateSiteVisit(ctx, params); err != nil {
		s.logger.Error("failed to create site visit", "error", err, "op", op, "lead_id", params.LeadID)
		return err
	}

	metrics.SiteVisitsCreated.Inc()
	s.logger.Info("site visit created", "lead_id", params.LeadID, "property_id", params.PropertyProfileID)
	return nil
}

// Update updates an existing site visit.
func (s *siteVisitService) Update(ctx context.Context, params domain.UpdateSiteVisitParams) error {
	const op = "SiteVisitService.Update"

	if params.ID == "" {
		return domain.Invalid(op, "Site visit ID is required")
	}
	if err := validateSiteVisit(op, params.CreateSiteVisitParams); err != nil {
		return err
	}

	if err := s.api.UpdateSiteVisit(ctx, params); err != nil {
		s.logger.Error("failed to update site visit", "error", err, "op", op, "site_visit_id", params.ID)
		return err
	}

	s.logger.Info("site visit updated", "site_visit_id", params.ID)
	return nil
}

// validateSiteVisit validates required site-visit fields. Unlike calls,
// a visit is booked ahead of time, so both ends of the window are
// mandatory.
func validateSiteVisit(op string, p domain.CreateSiteVisitParams) error {
	if p.CreatedBy == "" {
		return domain.Unauthorized(op, "You must be signed in to save site visits")
	}
	if p.LeadID == "" {
		return domain.Invalid(op, "A lead must be selected")
	}
	if p.PropertyProfileID == "" {
		return domain.Invalid(op, "A property must be selected")
	}
	if p.VisitDate == "" {
		return domain.Invalid(op, "Visit date is required")
	}
	if p.StartTime == "" || p.EndTime == "" {
		return domain.Invalid(op, "Start and end times are required")
	}
	return validateTimeRange(op, p.StartTime, p.EndTime)
}

// siteVisitRecordToDomain converts a CRM site-visit record to a domain
// SiteVisit.
func siteVisitRecordToDomain(rec crm.SiteVisitRecord) domain.SiteVisit {
	return domain.SiteVisit{
		ID:           rec.SiteVisitID.String(),
		CallLogID:    rec.CallLogID.String(),
		LeadID:       rec.LeadID.String(),
		LeadName:     rec.LeadName,
		LeadContact:  domain.FormatPhone(rec.ContactNumber),
		PropertyID:   rec.PropertyProfileID.String(),
		PropertyName: rec.PropertyProfileName,
		StaffID:      rec.StaffID.String(),
		StaffName:    rec.StaffName,
		Purpose:      rec.Purpose,
		VisitDate:    rec.VisitDate,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		Remark:       rec.Remark,
	}
}
