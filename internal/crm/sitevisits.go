package crm

import (
	"context"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

// Site-visit endpoints.
const (
	siteVisitPaginationEndpoint = "site-visit/pagination"
	siteVisitCreateEndpoint     = "site-visit/create"
	siteVisitUpdateEndpoint     = "site-visit/update"
)

// SiteVisitRecord is one site-visit row as the CRM sends it.
type SiteVisitRecord struct {
	SiteVisitID         flexID `json:"site_visit_id"`
	CallLogID           flexID `json:"call_log_id"`
	LeadID              flexID `json:"lead_id"`
	LeadName            string `json:"lead_name"`
	ContactNumber       string `json:"contact_number"`
	PropertyProfileID   flexID `json:"property_profile_id"`
	PropertyProfileName string `json:"property_profile_name"`
	StaffID             flexID `json:"staff_id"`
	StaffName           string `json:"staff_name"`
	Purpose             string `json:"purpose"`
	VisitDate           string `json:"visit_date"`
	StartTime           string `json:"visit_start_time"`
	EndTime             string `json:"visit_end_time"`
	Remark              string `json:"remark"`
}

// SearchSiteVisits fetches one page of site visits.
func (c *Client) SearchSiteVisits(ctx context.Context, req domain.PageRequest) ([]SiteVisitRecord, int, error) {
	raws, total, err := c.Search(ctx, siteVisitPaginationEndpoint, req)
	if err != nil {
		return nil, 0, err
	}
	return decodeRows[SiteVisitRecord](c.logger, siteVisitPaginationEndpoint, raws), total, nil
}

type siteVisitPayload struct {
	CallLogID         string `json:"call_log_id,omitempty"`
	LeadID            string `json:"lead_id"`
	PropertyProfileID string `json:"property_profile_id"`
	StaffID           string `json:"staff_id,omitempty"`
	VisitDate         string `json:"visit_date"`
	StartTime         string `json:"visit_start_time"`
	EndTime           string `json:"visit_end_time"`
	Purpose           string `json:"purpose,omitempty"`
	Remark            string `json:"remark,omitempty"`
	CreatedBy         string `json:"created_by"`
}

func newSiteVisitPayload(p domain.CreateSiteVisitParams) siteVisitPayload {
	return siteVisitPayload{
		CallLogID:         p.CallLogID,
		LeadID:            p.LeadID,
		PropertyProfileID: p.PropertyProfileID,
		StaffID:           p.StaffID,
		VisitDate:         p.VisitDate,
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		Purpose:           p.Purpose,
		Remark:            p.Remark,
		CreatedBy:         p.CreatedBy,
	}
}

// CreateSiteVisit schedules a site visit.
func (c *Client) CreateSiteVisit(ctx context.Context, params domain.CreateSiteVisitParams) error {
	return c.sendJSON(ctx, http.MethodPost, siteVisitCreateEndpoint, newSiteVisitPayload(params), nil)
}

// UpdateSiteVisit updates a site visit.
func (c *Client) UpdateSiteVisit(ctx context.Context, params domain.UpdateSiteVisitParams) error {
	body := struct {
		SiteVisitID string `json:"site_visit_id"`
		siteVisitPayload
	}{params.ID, newSiteVisitPayload(params.CreateSiteVisitParams)}
	return c.sendJSON(ctx, http.MethodPut, siteVisitUpdateEndpoint, body, nil)
}
