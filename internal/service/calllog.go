package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"
)

const clockLayout = "15:04"

// CallLogAPI is the slice of the CRM client the call-log service needs.
type CallLogAPI interface {
	SearchCallLogs(ctx context.Context, req domain.PageRequest) ([]crm.CallLogRecord, int, error)
	CreateCallLog(ctx context.Context, params domain.CreateCallLogParams) error
	UpdateCallLog(ctx context.Context, params domain.UpdateCallLogParams) error
}

// CallLogService defines the interface for call-pipeline operations.
type CallLogService interface {
	// Search retrieves one page of call-pipeline entries.
	Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.CallLog], error)

	// Create creates a new call-pipeline entry.
	Create(ctx context.Context, params domain.CreateCallLogParams) error

	// Update updates an existing call-pipeline entry.
	Update(ctx context.Context, params domain.UpdateCallLogParams) error
}

// callLogService implements CallLogService.
type callLogService struct {
	api    CallLogAPI
	logger *slog.Logger
}

// NewCallLogService creates a new CallLogService.
func NewCallLogService(api CallLogAPI, logger *slog.Logger) CallLogService {
	return &callLogService{
		api:    api,
		logger: logger,
	}
}

// Search retrieves one page of call-pipeline entries.
func (s *callLogService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.CallLog], error) {
	const op = "CallLogService.Search"

	records, total, err := s.api.SearchCallLogs(ctx, req)
	if err != nil {
		s.logger.Error("failed to search call logs", "error", err, "op", op, "page", req.PageNumber)
		return domain.Page[domain.CallLog]{}, err
	}

	logs := make([]domain.CallLog, len(records))
	for i, rec := range records {
		logs[i] = callLogRecordToDomain(rec)
	}
	return domain.Page[domain.CallLog]{Rows: logs, Total: total}, nil
}

// Create creates a new call-pipeline entry.
func (s *callLogService) Create(ctx context.Context, params domain.CreateCallLogParams) error {
	const op = "CallLogService.Create"

	if err := validateCallLog(op, params); err != nil {
		return err
	}

	if err := s.api.CreateCallLog(ctx, params); err != nil {
		s.logger.Error("failed to create call log", "error", err, "op", op, "lead_id", params.LeadID)
		return err
	}

	metrics.CallLogsCreated.Inc()
	s.logger.Info("call log created", "lead_id", params.LeadID, "property_id", params.PropertyProfileID)
	return nil
}

// Update updates an existing call-pipeline entry.
func (s *callLogService) Update(ctx context.Context, params domain.UpdateCallLogParams) error {
	const op = "CallLogService.Update"

	if params.ID == "" {
		return domain.Invalid(op, "Call log ID is required")
	}
	if err := validateCallLog(op, params.CreateCallLogParams); err != nil {
		return err
	}

	if err := s.api.UpdateCallLog(ctx, params); err != nil {
		s.logger.Error("failed to update call log", "error", err, "op", op, "call_log_id", params.ID)
		return err
	}

	s.logger.Info("call log updated", "call_log_id", params.ID)
	return nil
}

// validateCallLog validates required call-log fields.
func validateCallLog(op string, p domain.CreateCallLogParams) error {
	if p.CreatedBy == "" {
		return domain.Unauthorized(op, "You must be signed in to save call logs")
	}
	if p.LeadID == "" {
		return domain.Invalid(op, "A lead must be selected")
	}
	if p.PropertyProfileID == "" {
		return domain.Invalid(op, "A property must be selected")
	}
	if p.CallDate == "" {
		return domain.Invalid(op, "Call date is required")
	}
	if p.StartTime == "" {
		return domain.Invalid(op, "Start time is required")
	}
	return validateTimeRange(op, p.StartTime, p.EndTime)
}

// validateTimeRange requires end, when present, to be strictly after
// start. A call cannot end the minute it starts.
func validateTimeRange(op, start, end string) error {
	if end == "" {
		return nil
	}
	startT, err := time.Parse(clockLayout, start)
	if err != nil {
		return domain.Invalid(op, "Start time must be in HH:MM format")
	}
	endT, err := time.Parse(clockLayout, end)
	if err != nil {
		return domain.Invalid(op, "End time must be in HH:MM format")
	}
	if !endT.After(startT) {
		return domain.Invalid(op, "End time must be after start time")
	}
	return nil
}

// callLogRecordToDomain converts a CRM call-log record to a domain
// CallLog.
func callLogRecordToDomain(rec crm.CallLogRecord) domain.CallLog {
	return domain.CallLog{
		ID:           rec.CallLogID.String(),
		LeadID:       rec.LeadID.String(),
		LeadName:     rec.LeadName,
		LeadContact:  domain.FormatPhone(rec.ContactNumber),
		PropertyID:   rec.PropertyProfileID.String(),
		PropertyName: rec.PropertyProfileName,
		StaffID:      rec.StaffID.String(),
		StaffName:    rec.StaffName,
		Objective:    rec.ObjectiveName,
		Status:       rec.StatusName,
		CallDate:     rec.CallDate,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		Remark:       rec.Remark,
	}
}
