package crm

import (
	"context"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

// Lead endpoints.
const (
	leadPaginationEndpoint = "lead/pagination"
	leadCreateEndpoint     = "lead/create"
	leadUpdateEndpoint     = "lead/update"
)

// LeadRecord is one lead row as the CRM sends it.
type LeadRecord struct {
	LeadID       flexID                 `json:"lead_id"`
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	GenderName   string                 `json:"gender_name"`
	Email        string                 `json:"email"`
	SourceName   string                 `json:"lead_source_name"`
	StatusName   string                 `json:"lead_status_name"`
	CreatedDate  string                 `json:"created_date"`
	Remark       string                 `json:"remark"`
	ContactData  []ContactChannelRecord `json:"contact_data"`
	Address      *AddressRecord         `json:"address"`
}

// SearchLeads fetches one page of leads.
func (c *Client) SearchLeads(ctx context.Context, req domain.PageRequest) ([]LeadRecord, int, error) {
	raws, total, err := c.Search(ctx, leadPaginationEndpoint, req)
	if err != nil {
		return nil, 0, err
	}
	return decodeRows[LeadRecord](c.logger, leadPaginationEndpoint, raws), total, nil
}

type leadPayload struct {
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	Gender       string                 `json:"gender,omitempty"`
	Email        string                 `json:"email,omitempty"`
	LeadSourceID string                 `json:"lead_source_id,omitempty"`
	LeadStatusID string                 `json:"lead_status_id,omitempty"`
	Remark       string                 `json:"remark,omitempty"`
	CreatedBy    string                 `json:"created_by"`
	ContactData  []ContactChannelRecord `json:"contact_data,omitempty"`
	Address      addressPayload         `json:"address"`
}

func newLeadPayload(p domain.CreateLeadParams) leadPayload {
	return leadPayload{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Gender:       p.Gender,
		Email:        p.Email,
		LeadSourceID: p.SourceID,
		LeadStatusID: p.StatusID,
		Remark:       p.Remark,
		CreatedBy:    p.CreatedBy,
		ContactData:  newContactPayload(p.Channels),
		Address:      newAddressPayload(p.Address),
	}
}

// CreateLead creates a lead.
func (c *Client) CreateLead(ctx context.Context, params domain.CreateLeadParams) error {
	return c.sendJSON(ctx, http.MethodPost, leadCreateEndpoint, newLeadPayload(params), nil)
}

// UpdateLead updates a lead.
func (c *Client) UpdateLead(ctx context.Context, params domain.UpdateLeadParams) error {
	body := struct {
		LeadID string `json:"lead_id"`
		leadPayload
	}{params.ID, newLeadPayload(params.CreateLeadParams)}
	return c.sendJSON(ctx, http.MethodPut, leadUpdateEndpoint, body, nil)
}
