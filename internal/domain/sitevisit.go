package domain

// SiteVisit is the UI-ready projection of one backend site-visit record.
// Identity is the backend site_visit_id.
type SiteVisit struct {
	ID           string
	CallLogID    string
	LeadID       string
	LeadName     string
	LeadContact  string
	PropertyID   string
	PropertyName string
	StaffID      string
	StaffName    string
	Purpose      string
	VisitDate    string
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	Remark       string
}

// CreateSiteVisitParams contains validated parameters for scheduling a
// site visit.
type CreateSiteVisitParams struct {
	CreatedBy         string
	CallLogID         string
	LeadID            string
	PropertyProfileID string
	StaffID           string
	VisitDate         string
	StartTime         string
	EndTime           string
	Purpose           string
	Remark            string
}

// UpdateSiteVisitParams contains validated parameters for updating a
// site visit.
type UpdateSiteVisitParams struct {
	ID string
	CreateSiteVisitParams
}
