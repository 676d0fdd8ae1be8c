// This file defines the Lead view model and service parameters.
//
// A Lead is the normalized projection of one backend lead record; identity
// is the backend primary key (lead_id). Rows are created fresh on every
// fetch response and never mutated in place.
package domain

// Lead is the UI-ready projection of one backend lead record.
type Lead struct {
	ID       string // backend lead_id
	FullName string // first + last name, NoName when both empty
	Gender   string
	Contact  string // formatted primary contact, NoContact when none
	Phone    string // raw primary number for edit round trips, empty when none
	Email    string
	Source   string
	Status   string
	Address  Address
	Channels []ContactChannel
	Remark   string
	Created  string // backend-reported creation date, verbatim
}

// CreateLeadParams contains validated parameters for creating a lead.
type CreateLeadParams struct {
	CreatedBy string // authenticated user id; required (see handler redirect rule)
	FirstName string
	LastName  string
	Gender    string
	Email     string
	Phone     string
	SourceID  string
	StatusID  string
	Address   Address
	Channels  []ContactChannel
	Remark    string
}

// UpdateLeadParams contains validated parameters for updating a lead.
type UpdateLeadParams struct {
	ID string // lead to update
	CreateLeadParams
}
