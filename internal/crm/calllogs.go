package crm

import (
	"context"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

// Call-pipeline endpoints.
const (
	callLogPaginationEndpoint = "call-log/pagination"
	callLogCreateEndpoint     = "call-log/create"
	callLogUpdateEndpoint     = "call-log/update"
)

// CallLogRecord is one call-pipeline row as the CRM sends it.
type CallLogRecord struct {
	CallLogID           flexID `json:"call_log_id"`
	LeadID              flexID `json:"lead_id"`
	LeadName            string `json:"lead_name"`
	ContactNumber       string `json:"contact_number"`
	PropertyProfileID   flexID `json:"property_profile_id"`
	PropertyProfileName string `json:"property_profile_name"`
	StaffID             flexID `json:"staff_id"`
	StaffName           string `json:"staff_name"`
	ObjectiveName       string `json:"objective_name"`
	StatusName          string `json:"call_status_name"`
	CallDate            string `json:"call_date"`
	StartTime           string `json:"call_start_time"`
	EndTime             string `json:"call_end_time"`
	Remark              string `json:"remark"`
}

// SearchCallLogs fetches one page of call-pipeline entries.
func (c *Client) SearchCallLogs(ctx context.Context, req domain.PageRequest) ([]CallLogRecord, int, error) {
	raws, total, err := c.Search(ctx, callLogPaginationEndpoint, req)
	if err != nil {
		return nil, 0, err
	}
	return decodeRows[CallLogRecord](c.logger, callLogPaginationEndpoint, raws), total, nil
}

type callLogPayload struct {
	LeadID            string `json:"lead_id"`
	PropertyProfileID string `json:"property_profile_id"`
	StaffID           string `json:"staff_id,omitempty"`
	ObjectiveID       string `json:"objective_id,omitempty"`
	CallDate          string `json:"call_date"`
	StartTime         string `json:"call_start_time"`
	EndTime           string `json:"call_end_time,omitempty"`
	Remark            string `json:"remark,omitempty"`
	CreatedBy         string `json:"created_by"`
}

func newCallLogPayload(p domain.CreateCallLogParams) callLogPayload {
	return callLogPayload{
		LeadID:            p.LeadID,
		PropertyProfileID: p.PropertyProfileID,
		StaffID:           p.StaffID,
		ObjectiveID:       p.ObjectiveID,
		CallDate:          p.CallDate,
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		Remark:            p.Remark,
		CreatedBy:         p.CreatedBy,
	}
}

// CreateCallLog creates a call-pipeline entry.
func (c *Client) CreateCallLog(ctx context.Context, params domain.CreateCallLogParams) error {
	return c.sendJSON(ctx, http.MethodPost, callLogCreateEndpoint, newCallLogPayload(params), nil)
}

// UpdateCallLog updates a call-pipeline entry.
func (c *Client) UpdateCallLog(ctx context.Context, params domain.UpdateCallLogParams) error {
	body := struct {
		CallLogID string `json:"call_log_id"`
		callLogPayload
	}{params.ID, newCallLogPayload(params.CreateCallLogParams)}
	return c.sendJSON(ctx, http.MethodPut, callLogUpdateEndpoint, body, nil)
}
