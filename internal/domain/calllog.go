package domain

// CallLog is the UI-ready projection of one backend call-pipeline record.
// Identity is the backend call_log_id.
type CallLog struct {
	ID           string
	LeadID       string
	LeadName     string
	LeadContact  string
	PropertyID   string
	PropertyName string
	StaffID      string
	StaffName    string
	Objective    string
	Status       string
	CallDate     string
	StartTime    string // HH:MM
	EndTime      string // HH:MM, empty when the call is still open
	Remark       string
}

// CreateCallLogParams contains validated parameters for creating a
// call-pipeline entry.
type CreateCallLogParams struct {
	CreatedBy         string
	LeadID            string
	PropertyProfileID string
	StaffID           string
	ObjectiveID       string
	CallDate          string
	StartTime         string
	EndTime           string
	Remark            string
}

// UpdateCallLogParams contains validated parameters for updating a
// call-pipeline entry.
type UpdateCallLogParams struct {
	ID string
	CreateCallLogParams
}
