package service

import (
	"context"
	"log/slog"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
)

// StaffAPI is the slice of the CRM client the staff service needs.
type StaffAPI interface {
	SearchStaff(ctx context.Context, req domain.PageRequest) ([]crm.StaffRecord, int, error)
}

// StaffService defines the interface for staff lookups. Staff records
// are read-only here; they are managed elsewhere in the CRM.
type StaffService interface {
	// Search retrieves one page of staff matching the request.
	Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Staff], error)
}

// staffService implements StaffService.
type staffService struct {
	api    StaffAPI
	logger *slog.Logger
}

// NewStaffService creates a new StaffService.
func NewStaffService(api StaffAPI, logger *slog.Logger) StaffService {
	return &staffService{
		api:    api,
		logger: logger,
	}
}

// Search retrieves one page of staff matching the request.
func (s *staffService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Staff], error) {
	const op = "StaffService.Search"

	records, total, err := s.api.SearchStaff(ctx, req)
	if err != nil {
		s.logger.Error("failed to search staff", "error", err, "op", op, "page", req.PageNumber)
		return domain.Page[domain.Staff]{}, err
	}

	staff := make([]domain.Staff, len(records))
	for i, rec := range records {
		staff[i] = staffRecordToDomain(rec)
	}
	return domain.Page[domain.Staff]{Rows: staff, Total: total}, nil
}

// staffRecordToDomain converts a CRM staff record to a domain Staff.
func staffRecordToDomain(rec crm.StaffRecord) domain.Staff {
	channels := crm.ContactChannels(rec.ContactData)
	return domain.Staff{
		ID:       rec.StaffID.String(),
		FullName: domain.FullName(rec.FirstName, rec.LastName),
		Gender:   rec.GenderName,
		Contact:  domain.FormatPhone(domain.PrimaryContact(channels)),
		Email:    rec.Email,
		Position: rec.Position,
		Branch:   rec.BranchName,
	}
}
